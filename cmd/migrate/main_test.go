package main

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE categorias (id int);
ALTER TABLE categorias ADD COLUMN name text;

-- +migrate Down
DROP TABLE categorias;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE categorias")
		assert.Contains(t, up, "ALTER TABLE categorias")
		assert.NotContains(t, up, "DROP TABLE categorias")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE categorias")
		assert.NotContains(t, down, "CREATE TABLE categorias")
	})
}

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunMigrationsUp(t *testing.T) {
	t.Run("Applies pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		applied := writeMigration(t, dir, "0001_init.sql", "-- +migrate Up\nCREATE TABLE categorias (id int);")
		pending := writeMigration(t, dir, "0002_seed.sql", "-- +migrate Up\nINSERT INTO categorias VALUES (1);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0002_seed.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("INSERT INTO categorias").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("0002_seed.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, runMigrationsUp(db, []string{applied, pending}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Up section", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		file := writeMigration(t, t.TempDir(), "0003_empty.sql", "-- +migrate Down\nSELECT 1;")
		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0003_empty.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		assert.Error(t, runMigrationsUp(db, []string{file}))
	})

	t.Run("Exec error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		file := writeMigration(t, t.TempDir(), "0001_init.sql", "-- +migrate Up\nCREATE TABLE x (id int);")
		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE x").WillReturnError(errors.New("syntax error"))

		err = runMigrationsUp(db, []string{file})
		assert.ErrorContains(t, err, "0001_init.sql")
	})
}

func TestRunMigrationsDown(t *testing.T) {
	t.Run("Rolls back latest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		file := writeMigration(t, t.TempDir(), "0001_init.sql",
			"-- +migrate Up\nCREATE TABLE categorias (id int);\n-- +migrate Down\nDROP TABLE categorias;")

		mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_init.sql"))
		mock.ExpectExec("DROP TABLE categorias").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, runMigrationsDown(db, []string{file}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		assert.NoError(t, runMigrationsDown(db, nil))
	})

	t.Run("File missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0009_gone.sql"))

		assert.ErrorContains(t, runMigrationsDown(db, nil), "0009_gone.sql")
	})
}

func TestRun(t *testing.T) {
	t.Run("Unknown mode", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Error(t, run(db, "sideways", t.TempDir()))
	})

	t.Run("Status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		writeMigration(t, dir, "0001_init.sql", "-- +migrate Up\nSELECT 1;")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, run(db, "status", dir))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ships the schema", func(t *testing.T) {
		files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.sql"))
		require.NoError(t, err)
		require.NotEmpty(t, files)

		content, err := os.ReadFile(files[0])
		require.NoError(t, err)
		up := extractMigrationPart(string(content), "Up")
		for _, table := range []string{"categorias", "condicion", "iphones_nuevos", "iphones_usados", "productos_varios"} {
			assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS "+table)
		}
	})
}
