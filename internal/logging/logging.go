// Package logging writes one JSON object per line, the format used by every
// component of the service (migrations, tracing setup, storage cleanup).
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger emits JSON lines stamped with a "ts" field in the configured location.
// It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	loc *time.Location
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{w: w, loc: loc}
}

var std = New(os.Stdout, time.UTC)

// Default returns the process-wide logger writing to stdout.
func Default() *Logger { return std }

// SetDefault replaces the process-wide logger. Call it once during startup.
func SetDefault(l *Logger) { std = l }

// Location returns the timezone used for timestamps.
func (l *Logger) Location() *time.Location { return l.loc }

// Log writes fields as a single JSON line. A missing "level" is derived from
// "status": "error" maps to error, anything else to info.
func (l *Logger) Log(fields map[string]any) {
	entry := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := entry["level"]; !ok {
		if entry["status"] == "error" {
			entry["level"] = "error"
		} else {
			entry["level"] = "info"
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		b = []byte(fmt.Sprintf(`{"level":"error","msg":"failed to marshal log entry: %s"}`, err))
	}
	b = append(b, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(b)
}

// Info logs msg at info level with extra fields.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.Log(with(fields, "info", msg))
}

// Error logs msg at error level, attaching err under "error".
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	e := with(fields, "error", msg)
	if err != nil {
		e["error"] = err.Error()
	}
	l.Log(e)
}

func with(fields map[string]any, level, msg string) map[string]any {
	e := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		e[k] = v
	}
	e["level"] = level
	e["msg"] = msg
	return e
}
