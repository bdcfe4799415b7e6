package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrationSource turns a migrations directory into a file:// source URL.
// The directory must exist so a wrong MIGRATIONS_PATH fails loudly.
func migrationSource(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("migrations path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("migrations path %q: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("migrations path %q: not a directory", path)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// RunMigrations brings the journal schema up to date and returns its
// version.
func RunMigrations(dsn string, migrationsPath string) (uint, error) {
	source, err := migrationSource(migrationsPath)
	if err != nil {
		return 0, err
	}
	m, err := migrate.New(source, dsn)
	if err != nil {
		return 0, fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("migration version %d is dirty", version)
	}
	log.Printf("✅ Esquema de bitácora al día (version=%d)", version)
	return version, nil
}
