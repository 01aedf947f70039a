package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMigrator(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migrator := NewMigrator(db)

	assert.NotNil(t, migrator)
	assert.Equal(t, db, migrator.db)
	assert.Equal(t, defaultMigrationsPath, migrator.migrationsPath)
	assert.Equal(t, defaultSeedsPath, migrator.seedsPath)
}

func TestWaitForDatabase_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(nil)

	migrator := NewMigrator(db)
	err = migrator.WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	restore := shortenRetries(t, 2, 50*time.Millisecond)
	defer restore()

	migrator := NewMigrator(db)
	err = migrator.WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	restore := shortenRetries(t, 2, 50*time.Millisecond)
	defer restore()

	for i := 0; i < readinessRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	migrator := NewMigrator(db)
	err = migrator.WaitForDatabase()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestUp_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migrator := &Migrator{
		db:             db,
		migrationsPath: "/nonexistent/path/to/migrations",
		seedsPath:      defaultSeedsPath,
	}

	err = migrator.Up()

	// A fresh checkout without migration files falls back to AutoMigrate
	assert.NoError(t, err)
}

func TestLoadSeeds_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migrator := &Migrator{
		db:             db,
		migrationsPath: defaultMigrationsPath,
		seedsPath:      "/nonexistent/seeds/path",
	}

	err = migrator.LoadSeeds()

	assert.NoError(t, err)
}

func TestLoadSeeds_NoSeedFiles(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migrator := &Migrator{
		db:             db,
		migrationsPath: defaultMigrationsPath,
		seedsPath:      t.TempDir(),
	}

	err = migrator.LoadSeeds()

	assert.NoError(t, err)
}

func TestLoadSeeds_SuccessfulExecution(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tempDir := t.TempDir()

	seedContent := `
INSERT INTO transaction_types (title)
VALUES ('transfer')
ON CONFLICT DO NOTHING;
`
	seedFile := filepath.Join(tempDir, "001_transaction_types.sql")
	err = os.WriteFile(seedFile, []byte(seedContent), 0644)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO transaction_types").WillReturnResult(sqlmock.NewResult(0, 1))

	migrator := &Migrator{
		db:             db,
		migrationsPath: defaultMigrationsPath,
		seedsPath:      tempDir,
	}

	err = migrator.LoadSeeds()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_FilesRunInLexicalOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tempDir := t.TempDir()

	seed2 := filepath.Join(tempDir, "002_cashbacks.sql")
	require.NoError(t, os.WriteFile(seed2, []byte("INSERT INTO cashbacks VALUES (1);"), 0644))

	seed1 := filepath.Join(tempDir, "001_card_types.sql")
	require.NoError(t, os.WriteFile(seed1, []byte("INSERT INTO card_types VALUES (1);"), 0644))

	// sqlmock enforces ordering, so expecting card_types first verifies the sort
	mock.ExpectExec("INSERT INTO card_types").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO cashbacks").WillReturnResult(sqlmock.NewResult(0, 1))

	migrator := &Migrator{
		db:             db,
		migrationsPath: defaultMigrationsPath,
		seedsPath:      tempDir,
	}

	err = migrator.LoadSeeds()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ExecutionFailureIsContinued(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tempDir := t.TempDir()

	seed1 := filepath.Join(tempDir, "001_bad_data.sql")
	require.NoError(t, os.WriteFile(seed1, []byte("INSERT INTO nonexistent_table VALUES (1);"), 0644))

	seed2 := filepath.Join(tempDir, "002_good_data.sql")
	require.NoError(t, os.WriteFile(seed2, []byte("INSERT INTO card_types VALUES (1);"), 0644))

	mock.ExpectExec("INSERT INTO nonexistent_table").WillReturnError(errors.New("table does not exist"))
	mock.ExpectExec("INSERT INTO card_types").WillReturnResult(sqlmock.NewResult(0, 1))

	migrator := &Migrator{
		db:             db,
		migrationsPath: defaultMigrationsPath,
		seedsPath:      tempDir,
	}

	err = migrator.LoadSeeds()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ReadFileError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tempDir := t.TempDir()

	// A directory with a .sql name forces the read to fail
	seedDir := filepath.Join(tempDir, "001_invalid.sql")
	require.NoError(t, os.Mkdir(seedDir, 0755))

	migrator := &Migrator{
		db:             db,
		migrationsPath: defaultMigrationsPath,
		seedsPath:      tempDir,
	}

	err = migrator.LoadSeeds()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read seed file")
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("AUTO_MIGRATE", "false")

	err = RunMigrationsIfEnabled(db)

	assert.NoError(t, err)
}

func TestRunMigrationsIfEnabled_Enabled_DatabaseNotReady(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("AUTO_MIGRATE", "true")

	restore := shortenRetries(t, 2, 50*time.Millisecond)
	defer restore()

	for i := 0; i < readinessRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = RunMigrationsIfEnabled(db)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database readiness check failed")
}

func TestStatus_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migrator := &Migrator{
		db:             db,
		migrationsPath: "/nonexistent/migrations",
		seedsPath:      defaultSeedsPath,
	}

	_, _, err = migrator.Status()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}

func shortenRetries(t *testing.T, retries int, interval time.Duration) func() {
	t.Helper()

	originalRetries := readinessRetries
	originalInterval := readinessInterval
	readinessRetries = retries
	readinessInterval = interval

	return func() {
		readinessRetries = originalRetries
		readinessInterval = originalInterval
	}
}
