package pkglog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	buf.Reset()
	return m
}

func TestHandlerAddsServiceAndCID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	ctx := SetCorrelationID(context.Background(), "cid-abc")
	logger.InfoContext(ctx, "derived", "variant", "HASH")

	m := decodeLine(t, &buf)
	if m["service"] != Service {
		t.Fatalf("expected service=%s, got %v", Service, m["service"])
	}
	if m["_cID"] != "cid-abc" {
		t.Fatalf("expected _cID=cid-abc, got %v", m["_cID"])
	}
	if m["severity"] != "INFO" {
		t.Fatalf("expected severity INFO, got %v", m["severity"])
	}
	if _, ok := m["ts"]; !ok {
		t.Fatalf("expected ts key in %v", m)
	}
	if m["variant"] != "HASH" {
		t.Fatalf("expected variant attribute, got %v", m["variant"])
	}
}

func TestHandlerSkipsMissingCID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	logger.Info("hello")

	m := decodeLine(t, &buf)
	if _, ok := m["_cID"]; ok {
		t.Fatalf("did not expect _cID to be set")
	}
	if m["service"] != Service {
		t.Fatalf("expected service=%s, got %v", Service, m["service"])
	}
}

func TestHandlerKeepsContextAfterWith(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo)).With("module", "identity")

	logger.InfoContext(SetCorrelationID(context.Background(), "cid-1"), "hello")

	m := decodeLine(t, &buf)
	if m["module"] != "identity" || m["_cID"] != "cid-1" || m["service"] != Service {
		t.Fatalf("unexpected record %v", m)
	}
}

func TestHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, ParseLevel("warn")))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatalf("expected warn to be written")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
