package metrics

import (
	"database/sql"

	"codeberg.org/mutker/nvstat/internal/errors"
	"codeberg.org/mutker/nvstat/internal/logger"
)

// SchemaVersion is bumped whenever the samples table shape changes. A
// mismatch triggers a backup and recreation, never an in-place migration.
const SchemaVersion = 1

const (
	createTablesSQL = `
    CREATE TABLE IF NOT EXISTS schema_versions (
        version     INTEGER PRIMARY KEY,
        applied_at  TEXT NOT NULL
    );
    CREATE TABLE IF NOT EXISTS samples (
        timestamp     INTEGER NOT NULL,
        device_index  INTEGER NOT NULL,
        name          TEXT NOT NULL,
        temperature   REAL NOT NULL,
        memory_used   REAL NOT NULL,
        memory_total  REAL NOT NULL,
        util_gpu      REAL NOT NULL,
        util_memory   REAL NOT NULL,
        power_draw    REAL NOT NULL,
        power_limit   REAL NOT NULL,
        PRIMARY KEY (timestamp, device_index)
    );`

	insertSampleSQL = `
    INSERT INTO samples (
        timestamp, device_index, name,
        temperature,
        memory_used, memory_total,
        util_gpu, util_memory,
        power_draw, power_limit
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// initSchema creates the tables and records the current schema version, all
// in one transaction.
func initSchema(db *sql.DB) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	defer rollback(tx)

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err).WithMessage("failed to create tables")
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_versions (version, applied_at) VALUES (?, datetime('now'))",
		SchemaVersion,
	); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err).WithMessage("failed to record schema version")
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	logger.Info().Int("version", SchemaVersion).Msg("Schema initialized")

	return nil
}

// GetSchemaVersion returns the stored schema version, or 0 for a database
// that has no schema yet.
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := tableExists(db, "schema_versions")
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(
		"SELECT version FROM schema_versions ORDER BY version DESC LIMIT 1",
	).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err).WithMessage("failed to read schema version")
	}

	return version, nil
}

func tableExists(db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type='table' AND name=?)",
		name,
	).Scan(&exists)
	if err != nil {
		return false, errors.New().Wrap(ErrSchemaValidationFailed, err).WithData(name)
	}

	return exists, nil
}
