package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

// Open connects to the store and brings its schema up to date.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("database URL is required for %s", driver)
		}
	case DriverSQLite:
		if dsn == "" {
			dsn = "file:quiznight.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := migrateUp(driver, dsn); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// migrateUp runs the embedded migrations on a dedicated connection, since
// closing a migrate instance also closes the handle it was built on.
func migrateUp(driver Driver, dsn string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(driver))
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	conn, err := sql.Open(string(driver), dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	var target database.Driver
	switch driver {
	case DriverPostgres:
		target, err = migratepostgres.WithInstance(conn, &migratepostgres.Config{})
	case DriverSQLite:
		target, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	}
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(driver), target)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Printf("[INFO] Database schema at version %d (%s)", version, driver)
	return nil
}
