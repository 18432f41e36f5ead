package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/MercuryBridge/internal/common"
	"github.com/goran-ethernal/MercuryBridge/internal/db"
	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	"github.com/goran-ethernal/MercuryBridge/internal/migrations"
	"github.com/goran-ethernal/MercuryBridge/pkg/config"
	pkgledger "github.com/goran-ethernal/MercuryBridge/pkg/ledger"
	pkgmercury "github.com/goran-ethernal/MercuryBridge/pkg/mercury"
	"github.com/russross/meddler"
)

const tableWriteAttempts = "write_attempts"

// Compile-time check to ensure Store implements the ledger interface.
var _ pkgledger.Ledger = (*Store)(nil)

// attemptRow is the database representation of a write attempt.
type attemptRow struct {
	ID         int64  `meddler:"id,pk"`
	Operation  string `meddler:"operation"`
	Label      string `meddler:"label"`
	ContractID string `meddler:"contract_id"`
	Request    string `meddler:"request"`
	Response   string `meddler:"response"`
	Accepted   bool   `meddler:"accepted"`
	Error      string `meddler:"error"`
	CreatedAt  int64  `meddler:"created_at"`
}

func (r *attemptRow) toEntry() (pkgledger.Entry, error) {
	entry := pkgledger.Entry{
		ID:         r.ID,
		Operation:  r.Operation,
		Label:      r.Label,
		ContractID: r.ContractID,
		Accepted:   r.Accepted,
		Error:      r.Error,
		CreatedAt:  time.UnixMilli(r.CreatedAt).UTC(),
	}

	if err := json.Unmarshal([]byte(r.Request), &entry.Request); err != nil {
		return pkgledger.Entry{}, fmt.Errorf("failed to decode request of attempt %d: %w", r.ID, err)
	}

	if r.Response != "" {
		entry.Response = json.RawMessage(r.Response)
	}

	return entry, nil
}

// Store is the SQLite backed subscription ledger.
type Store struct {
	db     *sql.DB
	dbPath string
	log    *logger.Logger

	now func() time.Time
}

// New opens the ledger database described by cfg and applies its migrations.
// cfg is expected to have defaults applied.
func New(cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	log = log.WithComponent(common.ComponentLedger)

	database, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	if err := migrations.RunMigrations(log, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("subscription ledger opened at %s", cfg.Path)

	return &Store{
		db:     database,
		dbPath: cfg.Path,
		log:    log,
		now:    time.Now,
	}, nil
}

// RecordAttempt stores a single write-channel attempt.
func (s *Store) RecordAttempt(ctx context.Context, attempt pkgmercury.WriteAttempt) error {
	request, err := json.Marshal(attempt.Request)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	row := &attemptRow{
		Operation:  attempt.Operation,
		Label:      attempt.Label,
		ContractID: attempt.Request.ContractID,
		Request:    string(request),
		Response:   string(attempt.Response),
		Accepted:   attempt.Accepted,
		CreatedAt:  s.now().UnixMilli(),
	}
	if attempt.Err != nil {
		row.Error = attempt.Err.Error()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	if err := meddler.Insert(tx, tableWriteAttempts, row); err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	LedgerWriteInc(attempt.Accepted)
	s.log.Debugf("recorded %s attempt: id=%d label=%q accepted=%t", attempt.Operation, row.ID,
		attempt.Label, attempt.Accepted)

	return nil
}

// List returns recorded attempts, newest first. A non-positive limit uses the default
// page size and limits above the maximum are capped.
func (s *Store) List(ctx context.Context, limit, offset int) ([]pkgledger.Entry, error) {
	if limit <= 0 {
		limit = pkgledger.DefaultListLimit
	}
	if limit > pkgledger.MaxListLimit {
		limit = pkgledger.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT * FROM write_attempts ORDER BY id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var dbRows []*attemptRow
	if err := meddler.ScanAll(rows, &dbRows); err != nil {
		return nil, fmt.Errorf("failed to scan attempts: %w", err)
	}

	entries := make([]pkgledger.Entry, 0, len(dbRows))
	for _, r := range dbRows {
		entry, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Prune deletes the attempts recorded before the given time.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM write_attempts WHERE created_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete attempts: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted attempts: %w", err)
	}

	LedgerPrunedAdd(deleted)

	return deleted, nil
}

// Compact truncates the write-ahead log and reclaims free pages.
func (s *Store) Compact(ctx context.Context) error {
	if err := db.Checkpoint(ctx, s.db); err != nil {
		return err
	}

	if err := db.Vacuum(ctx, s.db); err != nil {
		return err
	}

	size, err := db.DBTotalSize(s.dbPath)
	if err != nil {
		return err
	}

	s.log.Debugf("ledger compacted: size=%d bytes", size)

	return nil
}

// Close closes the ledger database.
func (s *Store) Close() error {
	return s.db.Close()
}
