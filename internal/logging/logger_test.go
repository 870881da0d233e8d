package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/CalKK/campaignmessaging/internal/core"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("hello", "k", "v")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["k"] != "v" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "text")
	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn entry should be written")
	}
}

func TestFromContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, "info", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	WithFields(ctx, "upload_id", "u1").Info("processed")

	out := buf.String()
	for _, want := range []string{"request_id=req-42", "upload_id=u1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
}

func TestDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnostics(New(&buf, "debug", "text"))

	d.RowSkipped(3)
	d.CountryCodeAdded(2, "712345678", "254712345678")
	d.RowRejected(core.ValidationError{RowIndex: 4, Message: "Missing name", Kind: core.KindMissingName})

	out := buf.String()
	for _, want := range []string{
		"skipping empty row", "raw_row=3",
		"country code added", "after=254712345678",
		"row rejected", "kind=missing_name",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostics output missing %q:\n%s", want, out)
		}
	}
}

func TestDiagnostics_ThroughValidator(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnostics(New(&buf, "info", "text"))

	res := core.NewValidator(core.DefaultCountryCodeRule, d).Validate([]core.NormalizedRow{
		{"Name", "Phone"},
		{"", "254712345678"},
		{"Bob", "712345678"},
	})
	if len(res.Contacts) != 1 || len(res.Errors) != 1 {
		t.Fatalf("Validate() = %d contacts, %d errors", len(res.Contacts), len(res.Errors))
	}

	out := buf.String()
	if !strings.Contains(out, "row rejected") {
		t.Errorf("rejection should log at info: %s", out)
	}
	if strings.Contains(out, "country code added") {
		t.Errorf("debug events should be filtered at info: %s", out)
	}
}
