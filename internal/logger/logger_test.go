package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebugHiddenByDefault(t *testing.T) {
	buf := capture(t)
	SetVerbose(false)

	Debug("loading events", "count", 3)
	Info("starting")
	assert.Empty(t, buf.String())
	assert.False(t, IsVerbose())
}

func TestVerboseShowsDebug(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Debug("loading events", "count", 3)
	assert.True(t, IsVerbose())
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "msg=\"loading events\"")
	assert.Contains(t, buf.String(), "count=3")
}

func TestWarnAndErrorAlwaysShown(t *testing.T) {
	buf := capture(t)

	Warn("dropped record", "index", 2)
	Error("write failed", errors.New("disk full"), "key", "events")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "index=2")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "err=\"disk full\"")
	assert.Contains(t, out, "key=events")
}

func TestSetLevel(t *testing.T) {
	buf := capture(t)
	SetLevel(slog.LevelInfo)

	Info("listening", "addr", "127.0.0.1:8080")
	Debug("hidden")

	assert.Contains(t, buf.String(), "addr=127.0.0.1:8080")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Same(t, buf, Output())
}
