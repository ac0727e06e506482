package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC)

	l.Log(map[string]any{"event": "ok", "status": "success"})
	l.Log(map[string]any{"event": "bad", "status": "error"})
	l.Log(map[string]any{"event": "explicit", "status": "error", "level": "warn"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "warn", lines[2]["level"])
	for _, line := range lines {
		ts, ok := line["ts"].(string)
		require.True(t, ok)
		_, err := time.Parse(time.RFC3339Nano, ts)
		assert.NoError(t, err)
	}
}

func TestLogger_DoesNotMutateInput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil)

	fields := map[string]any{"component": "test"}
	l.Info("hello", fields)

	assert.Len(t, fields, 1)
	assert.Equal(t, time.UTC, l.Location())
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC)

	l.Error("cleanup failed", errors.New("boom"), map[string]any{"key": "abc.pdf"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "cleanup failed", lines[0]["msg"])
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, "abc.pdf", lines[0]["key"])
}
