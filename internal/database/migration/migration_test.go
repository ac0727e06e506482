package migration

import (
	"bytes"
	"context"
	"io/fs"
	"testing"
	"time"

	"docstore/internal/logging"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	b, err := fs.ReadFile(migrations, files[0])
	require.NoError(t, err)
	content := string(b)
	assert.Contains(t, content, "-- +goose Up")
	assert.Contains(t, content, "-- +goose Down")
	assert.Contains(t, content, "CREATE TABLE IF NOT EXISTS documents")
}

func TestEnsureMigrated_DatabaseError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := logging.New(&buf, time.UTC)

	// No expectations: the first statement goose issues fails.
	err = EnsureMigrated(context.Background(), db, log, "db.local")

	assert.Error(t, err)
	assert.Contains(t, buf.String(), `"event":"db_migration_start"`)
	assert.Contains(t, buf.String(), `"event":"db_migration_failed"`)
	assert.Contains(t, buf.String(), `"db_host":"db.local"`)
}

func TestGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	g := gooseLogger{log: logging.New(&buf, time.UTC), dbHost: "h"}

	g.Printf("OK   %s\n", "00001_create_documents.sql")
	g.Fatalf("boom %d", 1)

	out := buf.String()
	assert.Contains(t, out, `"msg":"OK   00001_create_documents.sql"`)
	assert.Contains(t, out, `"error_message":"boom 1"`)
	assert.Contains(t, out, `"level":"error"`)
}
