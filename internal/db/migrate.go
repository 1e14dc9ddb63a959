package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"marketplace-be/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type MigrateMode string

const (
	MigrateUp   MigrateMode = "up"
	MigrateDown MigrateMode = "down"
)

var ErrUnknownMigrateMode = errors.New("unknown migration mode")

// ParseMigrateMode validates a -mode flag value.
func ParseMigrateMode(s string) (MigrateMode, error) {
	switch MigrateMode(s) {
	case MigrateUp, MigrateDown:
		return MigrateMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (use 'up' or 'down')", ErrUnknownMigrateMode, s)
	}
}

func newMigrator(conn *sql.DB, dbName string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dbName, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migration instance: %w", err)
	}
	return m, nil
}

// Migrate applies embedded migrations. steps <= 0 means all of them.
func Migrate(conn *sql.DB, dbName string, mode MigrateMode, steps int) error {
	log := logger.L().With(
		zap.String("mode", string(mode)),
		zap.Int("steps", steps),
	)

	m, err := newMigrator(conn, dbName)
	if err != nil {
		return err
	}

	switch {
	case mode == MigrateUp && steps > 0:
		err = m.Steps(steps)
	case mode == MigrateUp:
		err = m.Up()
	case mode == MigrateDown && steps > 0:
		err = m.Steps(-steps)
	case mode == MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMigrateMode, mode)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", verr)
	}
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
