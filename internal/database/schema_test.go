package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, EnsureSchema(ctx, db, SQLite))

	_, err = db.ExecContext(ctx,
		`INSERT INTO stations (name, created_at) VALUES (?, ?)`,
		"Howrah", "2024-12-01 00:00:00")
	require.NoError(t, err)

	// Re-applying the DDL must not disturb existing rows.
	require.NoError(t, EnsureSchema(ctx, db, SQLite))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestLockSuffix(t *testing.T) {
	assert.Equal(t, " FOR UPDATE", MySQL.LockSuffix())
	assert.Equal(t, "", SQLite.LockSuffix())
}
