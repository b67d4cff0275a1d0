package report

import (
	"database/sql"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/timing/core"
)

// RunRecord is one row of the runs table.
type RunRecord struct {
	ID            string
	Trace         string
	NumSets       int
	LinesPerSet   int
	LineSize      int
	Policy        string
	WritePolicy   string
	ClockOnMemory bool
	Stats         core.Stats
}

// NewRunRecord describes a finished run with a fresh ID.
func NewRunRecord(trace string, config core.Config, stats core.Stats) RunRecord {
	return RunRecord{
		ID:            xid.New().String(),
		Trace:         trace,
		NumSets:       config.NumSets,
		LinesPerSet:   config.LinesPerSet,
		LineSize:      config.LineSize,
		Policy:        config.Policy.String(),
		WritePolicy:   config.Write.String(),
		ClockOnMemory: config.ClockOnMemory,
		Stats:         stats,
	}
}

// SQLiteRecorder stores run results in a SQLite database. Records are
// buffered and written in batches; pending records are flushed at exit.
type SQLiteRecorder struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	pending   []RunRecord
	batchSize int
}

// NewSQLiteRecorder creates a recorder writing to path. An empty path picks
// a unique file name in the working directory.
func NewSQLiteRecorder(path string) *SQLiteRecorder {
	r := &SQLiteRecorder{
		dbName:    path,
		batchSize: 1000,
	}

	atexit.Register(func() { _ = r.Flush() })

	return r
}

// Init opens the database and creates the runs table.
func (r *SQLiteRecorder) Init() error {
	if r.dbName == "" {
		r.dbName = "cachesim_" + xid.New().String() + ".sqlite3"
	}

	db, err := sql.Open("sqlite3", r.dbName)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", r.dbName, err)
	}
	r.DB = db

	if err := r.createTable(); err != nil {
		return err
	}

	return r.prepareStatement()
}

// Path returns the database file name.
func (r *SQLiteRecorder) Path() string {
	return r.dbName
}

func (r *SQLiteRecorder) createTable() error {
	_, err := r.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id              VARCHAR(200) PRIMARY KEY,
			trace           VARCHAR(1000),
			num_sets        INTEGER,
			lines_per_set   INTEGER,
			line_size       INTEGER,
			policy          VARCHAR(20),
			write_policy    VARCHAR(50),
			clock_on_memory BOOLEAN,
			loads           INTEGER,
			stores          INTEGER,
			load_hits       INTEGER,
			load_misses     INTEGER,
			store_hits      INTEGER,
			store_misses    INTEGER,
			cycles          INTEGER
		)`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) prepareStatement() error {
	stmt, err := r.Prepare(`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	r.statement = stmt
	return nil
}

// Record buffers a run result.
func (r *SQLiteRecorder) Record(run RunRecord) error {
	r.pending = append(r.pending, run)
	if len(r.pending) >= r.batchSize {
		return r.Flush()
	}
	return nil
}

// Flush writes all buffered results in one transaction.
func (r *SQLiteRecorder) Flush() error {
	if len(r.pending) == 0 || r.DB == nil {
		return nil
	}

	tx, err := r.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt := tx.Stmt(r.statement)
	for _, run := range r.pending {
		s := run.Stats
		_, err := stmt.Exec(
			run.ID, run.Trace,
			run.NumSets, run.LinesPerSet, run.LineSize,
			run.Policy, run.WritePolicy, run.ClockOnMemory,
			s.Loads, s.Stores, s.LoadHits, s.LoadMisses,
			s.StoreHits, s.StoreMisses, s.Cycles,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit runs: %w", err)
	}

	r.pending = nil
	return nil
}

// Close flushes pending results and closes the database.
func (r *SQLiteRecorder) Close() error {
	if r.DB == nil {
		return nil
	}

	if err := r.Flush(); err != nil {
		return err
	}

	if err := r.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	r.DB = nil

	return nil
}
