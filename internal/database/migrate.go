package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	log "github.com/go-pkgz/lgr"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus describes one embedded migration and whether it is applied
type MigrationStatus struct {
	Version uint
	Name    string
	Applied bool
	Dirty   bool
}

// Migrator applies the embedded SQL migrations to a database
type Migrator struct {
	m   *migrate.Migrate
	src source.Driver
}

// NewMigrator builds a migrator on top of an open connection.
// The migrator borrows the connection and never closes it.
func NewMigrator(db *DB) (*Migrator, error) {
	if db == nil || db.DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not create migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create sqlite3 migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{m: m, src: src}, nil
}

// Up applies all pending migrations
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("an error occurred while applying migrations: %w", err)
	}
	return nil
}

// Down rolls back the given number of migrations
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	err := mg.m.Steps(-steps)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("an error occurred while rolling back migrations: %w", err)
	}
	return nil
}

// Version returns the current schema version, zero when nothing is applied
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, nil
}

// Status lists every embedded migration in order
func (mg *Migrator) Status() ([]MigrationStatus, error) {
	current, dirty, err := mg.Version()
	if err != nil {
		return nil, err
	}

	var statuses []MigrationStatus
	version, err := mg.src.First()
	for err == nil {
		r, name, readErr := mg.src.ReadUp(version)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read migration %d: %w", version, readErr)
		}
		r.Close()

		statuses = append(statuses, MigrationStatus{
			Version: version,
			Name:    name,
			Applied: version <= current,
			Dirty:   dirty && version == current,
		})
		version, err = mg.src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	return statuses, nil
}

// Migrate brings the schema up to date
func Migrate(db *DB) error {
	mg, err := NewMigrator(db)
	if err != nil {
		return err
	}

	log.Printf("[INFO] applying database migrations from embedded files")
	if err := mg.Up(); err != nil {
		return err
	}

	version, _, err := mg.Version()
	if err != nil {
		return err
	}
	log.Printf("[INFO] database schema at version %d", version)
	return nil
}
