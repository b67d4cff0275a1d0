package loader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/loader"
	"github.com/sarchlab/cachesim/timing/core"
)

var _ = Describe("Trace Loader", func() {
	Describe("Read", func() {
		It("should parse loads and stores in order", func() {
			records, err := loader.Read(strings.NewReader(
				"l 0x1A2B 3\ns 1024\n\nl 0x0\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(Equal([]core.AccessRecord{
				{IsLoad: true, Addr: 0x1A2B},
				{IsLoad: false, Addr: 1024},
				{IsLoad: true, Addr: 0},
			}))
		})

		It("should ignore trailing tokens", func() {
			records, err := loader.Read(strings.NewReader("s 0x1fffff50 1 extra\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Addr).To(Equal(uint32(0x1fffff50)))
		})

		It("should report the line number of a bad line", func() {
			_, err := loader.Read(strings.NewReader("l 0x10\nx 0x20\n"))
			Expect(err).To(MatchError(loader.ErrMalformedLine))
			Expect(err.Error()).To(ContainSubstring("line 2"))
		})

		It("should reject addresses wider than 32 bits", func() {
			_, err := loader.Read(strings.NewReader("l 0x100000000\n"))
			Expect(err).To(MatchError(loader.ErrMalformedLine))
		})

		It("should return no records for an empty trace", func() {
			records, err := loader.Read(strings.NewReader(""))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})
	})

	Describe("Load and Write", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "trace-loader-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should load what it wrote", func() {
			records := []core.AccessRecord{
				{IsLoad: true, Addr: 0xdeadbeef},
				{IsLoad: false, Addr: 0x40},
			}

			buf := &bytes.Buffer{}
			Expect(loader.Write(buf, records)).To(Succeed())
			Expect(buf.String()).To(Equal("l 0xdeadbeef\ns 0x40\n"))

			path := filepath.Join(tempDir, "test.trace")
			Expect(os.WriteFile(path, buf.Bytes(), 0644)).To(Succeed())

			loaded, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(records))
		})

		It("should return error for non-existent file", func() {
			_, err := loader.Load(filepath.Join(tempDir, "missing.trace"))
			Expect(err).To(HaveOccurred())
		})
	})
})
