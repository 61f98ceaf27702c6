package persistence

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_later.sql":  {Data: []byte("SELECT 1;")},
		"migrations/002_second.sql": {Data: []byte("SELECT 1;")},
		"migrations/001_first.sql":  {Data: []byte("SELECT 1;")},
		"migrations/nested/x.sql":   {Data: []byte("SELECT 1;")},
		"migrations/README.md":      {Data: []byte("notes")},
	}

	names, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_first.sql", "002_second.sql", "010_later.sql"}, names)
}

func TestEmbeddedMigrations_CreateSchema(t *testing.T) {
	names, err := migrationFiles(migrationsFS)
	require.NoError(t, err)
	require.NotEmpty(t, names)

	var all strings.Builder
	for _, name := range names {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		require.NoError(t, err)
		all.Write(content)
	}

	schema := all.String()
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS bookings")
	assert.Contains(t, schema, "users_username_key")
	assert.Contains(t, schema, "users_email_key")
	assert.Contains(t, schema, "DEFAULT 'pending'")
}
