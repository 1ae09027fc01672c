package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, ddl := range schemaDDL {
		_, err := db.Exec(ddl)
		require.NoError(t, err)
	}

	// First run adds the columns, every later run must treat the
	// duplicate-column failure as success.
	require.NoError(t, applyMigrations(db, zerolog.Nop()))
	require.NoError(t, applyMigrations(db, zerolog.Nop()))
	require.NoError(t, applyMigrations(db, zerolog.Nop()))

	// The migrated columns are usable.
	_, err = db.Exec("SELECT domain FROM customer_services")
	require.NoError(t, err)
	_, err = db.Exec("SELECT category FROM service_templates")
	require.NoError(t, err)
}

func TestIsDuplicateColumn(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE t (a TEXT)")
	require.NoError(t, err)

	_, err = db.Exec("ALTER TABLE t ADD COLUMN a TEXT")
	require.True(t, isDuplicateColumn(err))
	require.False(t, isDuplicateColumn(nil))
}
