package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"docstore/internal/logging"
)

//go:embed sql/*.sql
var migrations embed.FS

const migrationsDir = "sql"

// gooseLogger routes goose's own progress output through the JSON logger.
type gooseLogger struct {
	log    *logging.Logger
	dbHost string
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_progress",
		"status":    "in_progress",
		"msg":       strings.TrimSpace(fmt.Sprintf(format, v...)),
		"db_host":   g.dbHost,
	})
}

// Fatalf logs at error level but does not exit; EnsureMigrated reports the error instead.
func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Log(map[string]any{
		"component":     "database",
		"event":         "db_migration_failed",
		"status":        "error",
		"error_message": strings.TrimSpace(fmt.Sprintf(format, v...)),
		"db_host":       g.dbHost,
	})
}

// EnsureMigrated applies every pending migration embedded in the binary.
// Already applied versions are skipped by goose's version table.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()

	log.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log, dbHost: dbHost})
	if err := goose.SetDialect("postgres"); err != nil {
		return fail(log, dbHost, start, fmt.Errorf("set dialect: %w", err))
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fail(log, dbHost, start, fmt.Errorf("apply migrations: %w", err))
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fail(log, dbHost, start, fmt.Errorf("read schema version: %w", err))
	}

	log.Log(map[string]any{
		"component":      "database",
		"event":          "db_migration_success",
		"status":         "success",
		"schema_version": version,
		"db_host":        dbHost,
		"duration_ms":    time.Since(start).Milliseconds(),
	})

	return nil
}

func fail(log *logging.Logger, dbHost string, start time.Time, err error) error {
	log.Log(map[string]any{
		"component":     "database",
		"event":         "db_migration_failed",
		"status":        "error",
		"error_message": err.Error(),
		"db_host":       dbHost,
		"duration_ms":   time.Since(start).Milliseconds(),
	})
	return err
}
