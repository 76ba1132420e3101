package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestStopwatch(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	sw := newStopwatch(logger)
	time.Sleep(10 * time.Millisecond)
	sw.done("Loaded 4 subjects")

	if !bytes.Contains(buf.Bytes(), []byte("Loaded 4 subjects")) {
		t.Errorf("stopwatch output %q should contain message", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("ms)")) {
		t.Errorf("stopwatch output %q should contain the duration", buf.String())
	}
}

func TestStopwatchQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	sw := newStopwatch(newLogger(&buf, log.InfoLevel))
	sw.done("hidden")

	if buf.Len() != 0 {
		t.Errorf("stopwatch should log at debug level only, got %q", buf.String())
	}
}
