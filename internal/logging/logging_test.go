package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/msomdec/rms-content/internal/logging"
)

func TestConfigFinalize_Defaults(t *testing.T) {
	var cfg logging.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Level != logging.LevelInfo || cfg.Format != logging.FormatText {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigFinalize_Env(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "debug")
	t.Setenv("TEST_LOG_FORMAT", "json")

	var cfg logging.Config
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Level != logging.LevelDebug || cfg.Format != logging.FormatJSON {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestConfigFinalize_Invalid(t *testing.T) {
	for _, cfg := range []logging.Config{
		{Level: "verbose"},
		{Format: "xml"},
	} {
		if err := cfg.Finalize(nil); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Format: logging.FormatJSON}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["k"] != "v" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestFromContext(t *testing.T) {
	if logging.FromContext(context.Background()) != slog.Default() {
		t.Fatal("expected default logger for a bare context")
	}

	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}, &buf)
	ctx := logging.WithLogger(context.Background(), logger.With("request_id", "abc"))

	logging.FromContext(ctx).Info("hello")
	if !strings.Contains(buf.String(), "request_id=abc") {
		t.Fatalf("expected scoped attribute, got %q", buf.String())
	}
}
