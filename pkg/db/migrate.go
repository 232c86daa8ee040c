package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// MigrationResult reports the schema version before and after a run.
// A zero version means no migration had been applied.
type MigrationResult struct {
	FromVersion uint
	ToVersion   uint
	Applied     bool
}

// SourceURL turns a directory into a golang-migrate file source URL.
// Values that already carry a scheme are returned unchanged.
func SourceURL(migrationsPath string) string {
	if migrationsPath == "" {
		return "file://migrations"
	}
	if strings.Contains(migrationsPath, "://") {
		return migrationsPath
	}
	return "file://" + strings.TrimPrefix(migrationsPath, "./")
}

// RunMigrations applies every pending migration of migrationsPath to the
// talentmap database. Errors never include the connection string.
func RunMigrations(databaseURL, migrationsPath string) (MigrationResult, error) {
	var result MigrationResult

	connConfig, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return result, errors.New("failed to parse DATABASE_URL")
	}

	tlsConfig, err := configureTLS(databaseURL)
	if err != nil {
		return result, fmt.Errorf("failed to configure TLS: %w", err)
	}
	if tlsConfig != nil {
		connConfig.TLSConfig = tlsConfig
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return result, fmt.Errorf("failed to reach %s:%d: %w", connConfig.Host, connConfig.Port, err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: "talentmap_schema_migrations"})
	if err != nil {
		return result, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(SourceURL(migrationsPath), "postgres", driver)
	if err != nil {
		return result, fmt.Errorf("failed to load migrations from %s: %w", migrationsPath, err)
	}

	result.FromVersion, err = currentVersion(m)
	if err != nil {
		return result, err
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return result, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	result.ToVersion, err = currentVersion(m)
	if err != nil {
		return result, err
	}
	result.Applied = result.ToVersion != result.FromVersion

	return result, nil
}

// currentVersion refuses to continue from a dirty schema, which needs a
// manual force to the last good version
func currentVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema is dirty at version %d", version)
	}
	return version, nil
}
