package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORAGE_BACKEND", "MinIO")
	t.Setenv("ALLOWED_EXTENSIONS", "PDF, .md,,txt")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "2")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
	assert.Equal(t, "minio", cfg.Storage.Backend)
	assert.Equal(t, []string{"pdf", "md", "txt"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, int64(2*1024*1024), cfg.Upload.MaxSizeBytes)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORAGE_BACKEND", "STORAGE_ROOT", "ALLOWED_EXTENSIONS", "MAX_UPLOAD_SIZE_MB", "DEFAULT_PAGE_SIZE", "MAX_PAGE_SIZE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "disk", cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.Root)
	assert.Equal(t, []string{"pdf", "txt", "docx"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, int64(16*1024*1024), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, 10, cfg.Pagination.DefaultPerPage)
	assert.Equal(t, 100, cfg.Pagination.MaxPerPage)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "UTC"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "Local"
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"
	def := []string{"a"}

	t.Setenv(key, " , ,")
	assert.Equal(t, def, getEnvList(key, def))

	t.Setenv(key, "X,y")
	assert.Equal(t, []string{"x", "y"}, getEnvList(key, def))
}
