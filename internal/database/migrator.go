package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	defaultMigrationsPath = "db/migrations"
	defaultSeedsPath      = "db/seeds"
)

var (
	readinessRetries  = 30
	readinessInterval = 2 * time.Second
)

// Migrator applies schema migrations and optional seed data.
type Migrator struct {
	db             *sql.DB
	migrationsPath string
	seedsPath      string
}

// NewMigrator creates a migrator using the default migration and seed paths.
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{
		db:             db,
		migrationsPath: defaultMigrationsPath,
		seedsPath:      defaultSeedsPath,
	}
}

// WaitForDatabase blocks until the database answers a ping or retries run out.
func (m *Migrator) WaitForDatabase() error {
	log.Println("Waiting for database to be ready...")

	for attempt := 1; attempt <= readinessRetries; attempt++ {
		if err := m.db.Ping(); err == nil {
			log.Println("Database is ready")
			return nil
		} else {
			log.Printf("Database not ready (attempt %d/%d): %v", attempt, readinessRetries, err)
		}
		time.Sleep(readinessInterval)
	}

	return fmt.Errorf("database not ready after %d attempts", readinessRetries)
}

func (m *Migrator) newMigrate() (*migrate.Migrate, error) {
	absPath, err := filepath.Abs(m.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	instance, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", absPath),
		"postgres",
		driver,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return instance, nil
}

// Up applies all pending migrations. A missing migrations directory is not
// an error so fresh checkouts can fall back to AutoMigrate.
func (m *Migrator) Up() error {
	if _, err := os.Stat(m.migrationsPath); os.IsNotExist(err) {
		log.Printf("Migrations directory %s not found, skipping", m.migrationsPath)
		return nil
	}

	instance, err := m.newMigrate()
	if err != nil {
		return err
	}

	version, dirty, err := instance.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		log.Printf("Warning: database is dirty at version %d, forcing version", version)
		if err := instance.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	log.Printf("Current migration version: %d", version)

	err = instance.Up()
	switch {
	case err == migrate.ErrNoChange:
		log.Println("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("migration failed: %w", err)
	default:
		newVersion, _, verr := instance.Version()
		if verr != nil {
			return fmt.Errorf("failed to get new migration version: %w", verr)
		}
		log.Printf("Applied migrations, now at version %d", newVersion)
	}

	return nil
}

// LoadSeeds executes the SQL seed files in lexical order.
func (m *Migrator) LoadSeeds() error {
	if _, err := os.Stat(m.seedsPath); os.IsNotExist(err) {
		log.Printf("Seeds directory %s not found, skipping", m.seedsPath)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(m.seedsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list seed files: %w", err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		log.Println("No seed files found")
		return nil
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if _, err := m.db.Exec(string(content)); err != nil {
			log.Printf("Warning: seed file %s failed: %v", filepath.Base(file), err)
			continue
		}

		log.Printf("Executed seed file: %s", filepath.Base(file))
	}

	return nil
}

// Status reports the current migration version and dirty flag.
func (m *Migrator) Status() (version uint, dirty bool, err error) {
	if _, serr := os.Stat(m.migrationsPath); os.IsNotExist(serr) {
		return 0, false, fmt.Errorf("migrations directory not found")
	}

	instance, err := m.newMigrate()
	if err != nil {
		return 0, false, err
	}

	return instance.Version()
}

// RunMigrationsIfEnabled runs the full migrate-and-seed sequence when
// AUTO_MIGRATE=true.
func RunMigrationsIfEnabled(db *sql.DB) error {
	if os.Getenv("AUTO_MIGRATE") != "true" {
		log.Println("Auto-migration disabled (AUTO_MIGRATE != true)")
		return nil
	}

	migrator := NewMigrator(db)

	if err := migrator.WaitForDatabase(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	// Seeding at startup is gated separately so test and production
	// databases stay clean.
	if os.Getenv("SEED_DATABASE") == "true" {
		if err := migrator.LoadSeeds(); err != nil {
			log.Printf("Warning: seed loading failed: %v", err)
		}
	} else {
		log.Println("Seed loading disabled (SEED_DATABASE != true)")
	}

	version, dirty, err := migrator.Status()
	if err != nil {
		log.Printf("Warning: failed to get migration status: %v", err)
	} else {
		log.Printf("Migration status - version: %d, dirty: %v", version, dirty)
	}

	return nil
}
