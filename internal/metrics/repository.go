package metrics

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/mutker/nvstat/internal/errors"
	"codeberg.org/mutker/nvstat/internal/logger"
)

// repository buffers snapshots and writes them to sqlite in batches, so a
// short refresh interval does not turn into one transaction per tick.
type repository struct {
	db          *sql.DB
	cfg         Config
	mu          sync.Mutex
	buffer      []*Snapshot
	flushTicker *time.Ticker
	stopChan    chan struct{}
	doneChan    chan struct{}
}

// NewRepository opens (creating if needed) the sample database and starts
// the background flusher.
func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err).WithMessage("failed to create database directory")
	}

	// WAL keeps concurrent readers from ever blocking the recording path
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL&_auto_vacuum=2")
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err).WithMessage("failed to open database")
	}

	if err := ensureSchema(db, cfg.DBPath); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	logger.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Int("batch_size", cfg.BatchSize).
		Int("batch_timeout", cfg.BatchTimeout).
		Msg("Metrics repository initialized")

	repo := &repository{
		db:          db,
		cfg:         cfg,
		buffer:      make([]*Snapshot, 0, cfg.BatchSize),
		flushTicker: time.NewTicker(time.Duration(cfg.BatchTimeout) * time.Second),
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}

	go repo.flusher()

	return repo, nil
}

func (r *repository) Record(snapshot *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, snapshot)

	if len(r.buffer) >= r.cfg.BatchSize {
		return r.flush()
	}

	return nil
}

// Close stops the flusher, waits for its final flush, checkpoints the WAL
// and closes the database.
func (r *repository) Close() error {
	errFactory := errors.New()

	close(r.stopChan)
	r.flushTicker.Stop()
	<-r.doneChan

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errFactory.Wrap(ErrStorageClose, err).WithMessage("failed to checkpoint WAL")
	}

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err).WithMessage("failed to close database")
	}

	logger.Info().Msg("Metrics repository closed gracefully")

	return nil
}

func (r *repository) flusher() {
	defer close(r.doneChan)

	for {
		select {
		case <-r.flushTicker.C:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				logger.ErrorWithCode(err).Msg("Periodic flush failed")
			}
			r.mu.Unlock()
		case <-r.stopChan:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				logger.ErrorWithCode(err).Msg("Final flush failed")
			}
			r.mu.Unlock()
			return
		}
	}
}

// flush writes the buffered snapshots in one transaction, one row per device
// sample. Callers must hold r.mu.
func (r *repository) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	errFactory := errors.New()

	tx, err := r.db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err).WithMessage("failed to begin transaction")
	}

	stmt, err := tx.Prepare(insertSampleSQL)
	if err != nil {
		rollback(tx)
		return errFactory.Wrap(ErrTransactionFailed, err).WithMessage("failed to prepare insert")
	}
	defer stmt.Close()

	for _, snapshot := range r.buffer {
		if err := insertSnapshot(stmt, snapshot); err != nil {
			rollback(tx)
			return errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err).WithMessage("failed to commit transaction")
	}

	logger.Debug().Int("snapshots", len(r.buffer)).Msg("Flushed metrics to database")
	r.buffer = r.buffer[:0]

	return nil
}

func insertSnapshot(stmt *sql.Stmt, snapshot *Snapshot) error {
	for _, sample := range snapshot.Samples {
		if _, err := stmt.Exec(
			snapshot.Timestamp.Unix(),
			int64(sample.Index),
			sample.Name,
			sample.Temperature,
			sample.MemoryUsed,
			sample.MemoryTotal,
			sample.UtilGPU,
			sample.UtilMemory,
			sample.PowerDraw,
			sample.PowerLimit,
		); err != nil {
			return err
		}
	}

	return nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Error().Err(err).Msg("Failed to roll back transaction")
	}
}
