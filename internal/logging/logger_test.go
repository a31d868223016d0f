package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cinelog/internal/logging"
)

func TestConsoleHandlerFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("movie added", "title", "Heat", "rating", 9.5, "note", "two words")

	line := buf.String()
	if !strings.Contains(line, "INFO movie added") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "title=Heat") {
		t.Fatalf("expected bare value, got %q", line)
	}
	if !strings.Contains(line, "rating=9.5") {
		t.Fatalf("expected float value, got %q", line)
	}
	if !strings.Contains(line, `note="two words"`) {
		t.Fatalf("expected quoted value, got %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should be suppressed: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONHandlerEmitsParseableRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("export complete", "rows", 3)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if payload["msg"] != "export complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["rows"] != float64(3) {
		t.Fatalf("unexpected rows: %v", payload["rows"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
