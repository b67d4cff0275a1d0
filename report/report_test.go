package report_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/cachesim/report"
	"github.com/sarchlab/cachesim/timing/cache"
	"github.com/sarchlab/cachesim/timing/core"
)

var stats = core.Stats{
	Loads:       318197,
	Stores:      197486,
	LoadHits:    314171,
	LoadMisses:  4026,
	StoreHits:   188047,
	StoreMisses: 9439,
	Cycles:      9845283,
}

var _ = Describe("Report", func() {
	It("should print the fields in the fixed order", func() {
		buf := &bytes.Buffer{}
		Expect(report.Print(buf, stats)).To(Succeed())
		Expect(buf.String()).To(Equal(`
Total loads: 318197
Total stores: 197486
Load hits: 314171
Load misses: 4026
Store hits: 188047
Store misses: 9439
Total cycles: 9845283

`))
	})

	It("should print a CSV row", func() {
		buf := &bytes.Buffer{}
		Expect(report.PrintCSV(buf, stats, true)).To(Succeed())
		Expect(buf.String()).To(Equal(report.CSVHeader + "\n" +
			"318197,197486,314171,4026,188047,9439,9845283\n"))
	})

	It("should estimate the run time", func() {
		Expect(report.EstimatedSeconds(2_000_000_000, 2*sim.GHz)).To(BeNumerically("~", 1.0))
		Expect(report.EstimatedSeconds(100, 0)).To(BeZero())

		buf := &bytes.Buffer{}
		Expect(report.PrintSummary(buf, core.Stats{Loads: 4, LoadHits: 3, Cycles: 1000}, sim.GHz)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("Hit rate: 75.00%"))
		Expect(buf.String()).To(ContainSubstring("Estimated time at 1.00 GHz: 0.000001 s"))
	})
})

var _ = Describe("SQLiteRecorder", func() {
	var (
		tempDir  string
		recorder *report.SQLiteRecorder
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "report-test")
		Expect(err).NotTo(HaveOccurred())

		recorder = report.NewSQLiteRecorder(filepath.Join(tempDir, "runs.sqlite3"))
		Expect(recorder.Init()).To(Succeed())
	})

	AfterEach(func() {
		Expect(recorder.Close()).To(Succeed())
		_ = os.RemoveAll(tempDir)
	})

	It("should write buffered runs on flush", func() {
		config := core.Config{
			NumSets:     256,
			LinesPerSet: 4,
			LineSize:    16,
			Policy:      cache.LRU,
			Write:       cache.WritePolicy{Mode: cache.WriteBack, Alloc: cache.WriteAllocate},
		}

		run := report.NewRunRecord("gcc.trace", config, stats)
		Expect(run.ID).NotTo(BeEmpty())
		Expect(recorder.Record(run)).To(Succeed())
		Expect(recorder.Record(report.NewRunRecord("gcc.trace", config, stats))).To(Succeed())

		var count int
		Expect(recorder.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)).To(Succeed())
		Expect(count).To(Equal(0))

		Expect(recorder.Flush()).To(Succeed())

		Expect(recorder.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)).To(Succeed())
		Expect(count).To(Equal(2))

		var policy, writePolicy string
		var cycles uint64
		row := recorder.QueryRow("SELECT policy, write_policy, cycles FROM runs WHERE id = ?", run.ID)
		Expect(row.Scan(&policy, &writePolicy, &cycles)).To(Succeed())
		Expect(policy).To(Equal("lru"))
		Expect(writePolicy).To(Equal("write-back/write-allocate"))
		Expect(cycles).To(Equal(uint64(9845283)))
	})
})
