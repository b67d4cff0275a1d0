package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/timing/latency"
)

var _ = Describe("Clock", func() {
	var config *latency.TimingConfig

	BeforeEach(func() {
		config = latency.DefaultTimingConfig()
	})

	Describe("Memory latency", func() {
		It("should charge 100 cycles per 4-byte word", func() {
			Expect(config.MemoryLatency(4)).To(Equal(uint64(100)))
			Expect(config.MemoryLatency(16)).To(Equal(uint64(400)))
			Expect(config.MemoryLatency(64)).To(Equal(uint64(1600)))
		})

		It("should truncate lines smaller than a word", func() {
			Expect(config.MemoryLatency(2)).To(Equal(uint64(0)))
		})

		It("should follow a custom word cost", func() {
			config.WordLatency = 10
			config.WordSize = 8
			Expect(config.MemoryLatency(64)).To(Equal(uint64(80)))
		})
	})

	Describe("Clock-on-memory mode", func() {
		It("should make hits free and charge every access", func() {
			clock := latency.NewClock(config, 16, true)
			Expect(clock.MemoryLatency()).To(Equal(uint64(400)))

			clock.Hit()
			Expect(clock.Cycles()).To(Equal(uint64(0)))

			clock.EndAccess()
			Expect(clock.Cycles()).To(Equal(uint64(1)))

			clock.Memory()
			clock.EndAccess()
			Expect(clock.Cycles()).To(Equal(uint64(402)))
		})
	})

	Describe("Per-hit mode", func() {
		It("should charge hits and not accesses", func() {
			clock := latency.NewClock(config, 4, false)
			Expect(clock.OnMemory()).To(BeFalse())

			clock.Hit()
			clock.EndAccess()
			Expect(clock.Cycles()).To(Equal(uint64(1)))

			clock.Memory()
			clock.EndAccess()
			Expect(clock.Cycles()).To(Equal(uint64(101)))
		})
	})
})

var _ = Describe("TimingConfig", func() {
	Describe("Default Config", func() {
		It("should create valid default config", func() {
			config := latency.DefaultTimingConfig()
			Expect(config.Validate()).To(Succeed())
			Expect(config.WordSize).To(Equal(uint64(4)))
			Expect(config.WordLatency).To(Equal(uint64(100)))
		})
	})

	Describe("Validation", func() {
		It("should reject zero word size", func() {
			config := latency.DefaultTimingConfig()
			config.WordSize = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero word latency", func() {
			config := latency.DefaultTimingConfig()
			config.WordLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should allow free hits", func() {
			config := latency.DefaultTimingConfig()
			config.HitLatency = 0
			config.AccessOverhead = 0
			Expect(config.Validate()).To(Succeed())
		})
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := latency.DefaultTimingConfig()
			clone := original.Clone()

			clone.WordLatency = 7

			Expect(original.WordLatency).To(Equal(uint64(100)))
			Expect(clone.WordLatency).To(Equal(uint64(7)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := latency.DefaultTimingConfig()
			original.WordLatency = 50
			original.HitLatency = 2

			path := filepath.Join(tempDir, "timing.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.WordLatency).To(Equal(uint64(50)))
			Expect(loaded.HitLatency).To(Equal(uint64(2)))
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.json")
			err := os.WriteFile(path, []byte(`{"word_latency": 20}`), 0644)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.WordLatency).To(Equal(uint64(20)))
			Expect(loaded.WordSize).To(Equal(uint64(4)))
		})

		It("should return error for non-existent file", func() {
			_, err := latency.LoadConfig("/nonexistent/path/timing.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
