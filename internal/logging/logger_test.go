package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stardate/internal/config"
	"stardate/internal/logging"
)

func newFileLogger(t *testing.T, format, level string) (func(), string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Format: format, Level: level, OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	emit := func() {
		component := logging.NewComponentLogger(logger, "extractor")
		ctx := logging.ContextWithRunID(context.Background(), "run-123")
		logging.WithContext(ctx, component).Info("stardate extraction complete",
			logging.Int("records", 3),
			logging.String("match", "41148.7"),
			logging.String("note", "has spaces"))
		component.Debug("hidden at info")
	}
	return emit, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	emit, path := newFileLogger(t, "console", "info")
	emit()

	out := readLog(t, path)
	for _, want := range []string{
		"INFO extractor: stardate extraction complete",
		"run_id=run-123",
		"records=3",
		"match=41148.7",
		`note="has spaces"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output, got %q", want, out)
		}
	}
	if strings.Contains(out, "component=") {
		t.Fatalf("component should be rendered as prefix, got %q", out)
	}
	if strings.Contains(out, "hidden at info") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out)
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	emit, path := newFileLogger(t, "json", "info")
	emit()

	line := strings.TrimSpace(readLog(t, path))
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	if payload["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload[logging.FieldComponent] != "extractor" || payload[logging.FieldRunID] != "run-123" {
		t.Fatalf("missing structured fields: %v", payload)
	}
}

func TestDebugLevelAddsSource(t *testing.T) {
	emit, path := newFileLogger(t, "console", "debug")
	emit()
	out := readLog(t, path)
	if !strings.Contains(out, "hidden at info") {
		t.Fatalf("expected debug line, got %q", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected caller information at debug, got %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logging.WarnWithContext(logger, "episode titles unavailable", "titles_unavailable",
		logging.Error(errors.New("boom")))

	out := readLog(t, cfg.LogFilePath())
	for _, want := range []string{"WARN", "event_type=titles_unavailable", "error=boom", "error_hint=", "impact="} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestGroupedAttributesAreFlattened(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "group.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.WithGroup("stats").Info("summary", logging.Int("records", 2))
	if out := readLog(t, logPath); !strings.Contains(out, "stats.records=2") {
		t.Fatalf("expected grouped key, got %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.WarnWithContext(nil, "ignored", "noop")
}
