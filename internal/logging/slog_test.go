package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newBufLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), buf
}

func TestSlogLogger_WritesLevelsAndAttrs(t *testing.T) {
	log, buf := newBufLogger()
	ctx := context.Background()

	log.Info(ctx, "hello", "k", "v")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if rec["msg"] != "hello" || rec["k"] != "v" || rec["level"] != "INFO" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestSlogLogger_WithAddsPersistentAttrs(t *testing.T) {
	log, buf := newBufLogger()
	ctx := context.Background()

	child := log.With("component", "identity")
	child.Warn(ctx, "careful")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if rec["component"] != "identity" || rec["level"] != "WARN" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
