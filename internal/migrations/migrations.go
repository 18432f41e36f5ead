package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/MercuryBridge/internal/db"
	"github.com/goran-ethernal/MercuryBridge/internal/logger"
)

//go:embed 001_subscription_ledger.sql
var mig001 string

// All returns the ledger migrations in the order they are applied.
func All() []db.Migration {
	return []db.Migration{
		{
			ID:  "001_subscription_ledger.sql",
			SQL: mig001,
		},
	}
}

// RunMigrations brings the ledger schema of database up to date.
func RunMigrations(log *logger.Logger, database *sql.DB) error {
	return db.RunMigrations(log, database, All())
}
