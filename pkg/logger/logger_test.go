package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("Level(%d).String() = %v, expected %v", test.level, got, test.expected)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	if err := Initialize(Config{Level: WarnLevel, Component: "spdxlint"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("should be filtered")
	Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("info message leaked through warn-level filter")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message missing")
	}
}

func TestPrettyOutput(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, Component: "spdxlint"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("scan complete", String("target", "."), Int("files", 3))

	out := buf.String()
	for _, want := range []string{"[INFO]", "spdxlint:", "scan complete", "target=.", "files=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q: %s", want, out)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, JSON: true, Component: "spdxlint"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Error("scan failed", String("path", "lib.rs"))

	var entry LogEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" || entry.Message != "scan failed" || entry.Component != "spdxlint" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Fields["path"] != "lib.rs" {
		t.Errorf("missing field: %+v", entry.Fields)
	}
}
