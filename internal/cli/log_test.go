package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("resolved") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("lookup") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("lookup") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("stale cache") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	prog.done("Resolved 3 packages", "waves", 2)

	out := buf.String()
	assert.Contains(t, out, "Resolved 3 packages")
	assert.Contains(t, out, "elapsed=")
	assert.Contains(t, out, "waves=2")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	assert.Same(t, custom, got)

	got.Info("gathered")
	assert.NotZero(t, buf.Len())
}
