package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Vacuum rebuilds the database file to reclaim the space left by deleted rows.
// It needs exclusive access, so callers run it outside of any transaction.
func Vacuum(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
		if strings.Contains(err.Error(), "database is locked") {
			return fmt.Errorf("cannot vacuum: database is locked (retry later)")
		}
		return fmt.Errorf("vacuum failed: %w", err)
	}

	VacuumRunsInc()

	return nil
}

// Checkpoint truncates the write-ahead log. It is a no-op outside WAL mode.
func Checkpoint(ctx context.Context, db *sql.DB) error {
	isWAL, err := IsWALMode(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to check journal mode: %w", err)
	}
	if !isWAL {
		return nil
	}

	var busy, logFrames, checkpointed int
	if err := db.QueryRowContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)").
		Scan(&busy, &logFrames, &checkpointed); err != nil {
		return fmt.Errorf("failed to execute WAL checkpoint: %w", err)
	}

	if busy > 0 {
		return fmt.Errorf("WAL checkpoint left %d busy pages", busy)
	}

	return nil
}

// IsWALMode reports whether the database uses WAL journaling.
func IsWALMode(ctx context.Context, db *sql.DB) (bool, error) {
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		return false, err
	}
	return strings.EqualFold(mode, "wal"), nil
}

// DBTotalSize returns the combined size of the database file and its -wal and -shm
// companions. Missing files count as zero.
func DBTotalSize(dbPath string) (int64, error) {
	var total int64

	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return 0, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		total += info.Size()
	}

	DBSizeLog(total)

	return total, nil
}
