package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid log record %q: %v", buf.String(), err)
	}
	return rec
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(l *SlogLogger)
		level string
	}{
		{"debug", func(l *SlogLogger) { l.Debug(ctx, "msg") }, "DEBUG"},
		{"info", func(l *SlogLogger) { l.Info(ctx, "msg") }, "INFO"},
		{"warn", func(l *SlogLogger) { l.Warn(ctx, "msg") }, "WARN"},
		{"error", func(l *SlogLogger) { l.Error(ctx, "msg") }, "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, buf := newBufferLogger()
			tc.log(l)
			rec := lastRecord(t, buf)
			if rec["level"] != tc.level {
				t.Fatalf("expected level %s, got %v", tc.level, rec["level"])
			}
			if rec["msg"] != "msg" {
				t.Fatalf("unexpected msg: %v", rec["msg"])
			}
		})
	}
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufferLogger()

	child := l.With("module", "test")
	child.Info(context.Background(), "hello")

	rec := lastRecord(t, buf)
	if rec["module"] != "test" {
		t.Fatalf("expected module attr, got %v", rec)
	}
}
