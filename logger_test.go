package buddy

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestSetLoggerAndRestore(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	Logger().Debug("test message", "k", "v")
	if buf.Len() == 0 {
		t.Error("expected output after SetLogger with a non-nil handler")
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Debug("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output after SetLogger(nil) restored the default")
	}
}

func TestLoggerDefaultIsSilent(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil before any SetLogger call")
	}
	if Logger().Handler().Enabled(nil, slog.LevelError) {
		t.Error("default handler must report disabled for all levels")
	}
}
