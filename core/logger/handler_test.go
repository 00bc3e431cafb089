package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"log/slog"
)

func newTestHandler(buf *bytes.Buffer, format logFormat) (*structuredHandler, *asyncWriter) {
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:    slog.LevelDebug,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	return h, aw
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	h, aw := newTestHandler(buf, formatKV)

	ctx := WithRID(Background(), "42:1:9")
	ctx = WithUpdateMeta(ctx, 42, 9, 1)

	log := slog.New(h).With("component", "tg")
	LogEvent(ctx, log, slog.LevelInfo, "handler.handled",
		slog.String("status", "ok"),
		slog.String("cb_key", "get_next_card"),
	)
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line")
	}

	wantOrder := []string{"ts=", "level=INFO", "component=tg", "event=handler.handled", "status=ok", "rid=42:1:9"}
	pos := -1
	for _, marker := range wantOrder {
		idx := strings.Index(line, marker)
		if idx < 0 {
			t.Fatalf("missing %q in line: %s", marker, line)
		}
		if idx < pos {
			t.Fatalf("key %q out of order in line: %s", marker, line)
		}
		pos = idx
	}
	if !strings.Contains(line, "cb_key=get_next_card") {
		t.Errorf("missing cb_key in line: %s", line)
	}
}

func TestStructuredHandlerJSONFields(t *testing.T) {
	buf := &bytes.Buffer{}
	h, aw := newTestHandler(buf, formatJSON)

	ctx := WithUpdateMeta(Background(), 7, 9, 1)
	log := slog.New(h).With("component", "session")
	LogEvent(ctx, log, slog.LevelDebug, "remains.pop",
		slog.Int("remaining", 2),
	)
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &fields); err != nil {
		t.Fatalf("invalid json line: %v: %s", err, buf.String())
	}
	if fields["event"] != "remains.pop" {
		t.Errorf("event = %v", fields["event"])
	}
	if fields["component"] != "session" {
		t.Errorf("component = %v", fields["component"])
	}
	if fields["user_id"] != float64(9) || fields["chat_id"] != float64(1) {
		t.Errorf("update meta not propagated: %v", fields)
	}
	if fields["remaining"] != float64(2) {
		t.Errorf("remaining = %v", fields["remaining"])
	}
}

func TestDurationKeyNormalization(t *testing.T) {
	cases := map[string]string{
		"duration":         "duration_ms",
		"startup_duration": "startup_duration_ms",
		"elapsed":          "elapsed_ms",
		"backoff_ms":       "backoff_ms",
	}
	for in, want := range cases {
		if got := durationKey(in); got != want {
			t.Errorf("durationKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("abc\x00def", 10); got != "abcdef" {
		t.Errorf("control chars not stripped: %q", got)
	}
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Errorf("limit not applied: %q", got)
	}
	if got := SanitizeLimit("abc", 0); got != "" {
		t.Errorf("zero limit should return empty, got %q", got)
	}
}
