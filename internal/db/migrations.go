package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one embedded SQL migration. SQL holds an optional
// "-- +migrate Down" section followed by the "-- +migrate Up" section.
type Migration struct {
	ID  string
	SQL string
}

// parseMigration splits m into its up and down statements.
func parseMigration(m Migration) (*migrate.Migration, error) {
	down, up, found := strings.Cut(m.SQL, upMarker)
	if !found {
		return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
	}

	if _, after, ok := strings.Cut(down, downMarker); ok {
		down = after
	}

	mig := &migrate.Migration{Id: m.ID, Up: []string{strings.TrimSpace(up)}}
	if down = strings.TrimSpace(down); down != "" {
		mig.Down = []string{down}
	}

	return mig, nil
}

// RunMigrations applies every pending migration to db.
func RunMigrations(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return RunMigrationsDirection(log, db, migrations, migrate.Up)
}

// RunMigrationsDirection applies migrations in the given direction.
func RunMigrationsDirection(log *logger.Logger, db *sql.DB, migrations []Migration,
	dir migrate.MigrationDirection) error {
	source := &migrate.MemoryMigrationSource{}
	ids := make([]string, 0, len(migrations))

	for _, m := range migrations {
		mig, err := parseMigration(m)
		if err != nil {
			return err
		}
		source.Migrations = append(source.Migrations, mig)
		ids = append(ids, m.ID)
	}

	applied, err := migrate.Exec(db, driverName, source, dir)
	if err != nil {
		return fmt.Errorf("error executing migrations [%s]: %w", strings.Join(ids, ", "), err)
	}

	log.Infof("applied %d migrations from [%s]", applied, strings.Join(ids, ", "))

	return nil
}
