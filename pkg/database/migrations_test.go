package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "data", "ledger.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrator_RunEmbedded(t *testing.T) {
	db := openTestDB(t)
	m := NewMigrator(db, zap.NewNop())

	require.NoError(t, m.RunEmbedded())
	require.NoError(t, m.RunEmbedded(), "second run is a no-op")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	_, err := db.Exec("INSERT INTO kv_store (key, value) VALUES ('k', 'v')")
	assert.NoError(t, err)
}

func TestMigrator_OrdersByVersion(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"m/002_add_col.sql": {Data: []byte("ALTER TABLE t ADD COLUMN extra TEXT;")},
		"m/001_create.sql":  {Data: []byte("CREATE TABLE t (id INTEGER PRIMARY KEY);")},
		"m/README.md":       {Data: []byte("ignored")},
	}

	require.NoError(t, NewMigrator(db, zap.NewNop()).RunMigrations(fsys, "m"))

	_, err := db.Exec("INSERT INTO t (id, extra) VALUES (1, 'x')")
	assert.NoError(t, err)
}

func TestMigrator_BadFilename(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{"m/create.sql": {Data: []byte("SELECT 1;")}}

	err := NewMigrator(db, zap.NewNop()).RunMigrations(fsys, "m")
	assert.Error(t, err)
}
