package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" info ", InfoLevel},
		{"WARNING", WarnLevel},
		{"warn", WarnLevel},
		{"Error", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", JSONFormat, false},
		{"json", JSONFormat, false},
		{"TEXT", TextFormat, false},
		{"console", TextFormat, false},
		{"xml", JSONFormat, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	t.Run("Stage", func(t *testing.T) {
		f := Stage("rings")
		if f.Key != "stage" || f.Value != "rings" {
			t.Errorf("Stage() = %+v, want {Key:stage Value:rings}", f)
		}
	})

	t.Run("RingID", func(t *testing.T) {
		f := RingID(3)
		if f.Key != "ring" || f.Value != 3 {
			t.Errorf("RingID() = %+v", f)
		}
	})

	t.Run("Duration", func(t *testing.T) {
		f := Duration("timeout", 5*time.Second)
		if f.Key != "timeout" || f.Value != "5s" {
			t.Errorf("Duration() = %+v", f)
		}
	})

	t.Run("Error", func(t *testing.T) {
		f := Error(errors.New("bad ring"))
		if f.Key != "error" || f.Value != "bad ring" {
			t.Errorf("Error() = %+v", f)
		}
	})

	t.Run("Error_nil", func(t *testing.T) {
		f := Error(nil)
		if f.Key != "error" || f.Value != nil {
			t.Errorf("Error(nil) = %+v", f)
		}
	})
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("rings found", Count(4), Stage("rings"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "rings found" {
		t.Errorf("Message = %v, want 'rings found'", entry.Message)
	}
	if entry.Fields["count"] != float64(4) {
		t.Errorf("Fields[count] = %v, want 4", entry.Fields["count"])
	}
	if entry.Fields["stage"] != "rings" {
		t.Errorf("Fields[stage] = %v, want rings", entry.Fields["stage"])
	}
	if entry.Time == "" {
		t.Error("Time field is empty")
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("plain")

	if strings.Contains(buf.String(), "fields") {
		t.Errorf("expected fields to be omitted, got %s", buf.String())
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(lines))
	}

	for i, want := range []string{"WARN", "ERROR"} {
		var entry LogEntry
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			t.Fatalf("Failed to unmarshal entry %d: %v", i, err)
		}
		if entry.Level != want {
			t.Errorf("Entry %d level = %v, want %v", i, entry.Level, want)
		}
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("analysis"), Molecule("glucose"))
	child.Info("stage done", Stage("orient"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if entry.Fields["component"] != "analysis" {
		t.Errorf("component field = %v, want analysis", entry.Fields["component"])
	}
	if entry.Fields["molecule"] != "glucose" {
		t.Errorf("molecule field = %v, want glucose", entry.Fields["molecule"])
	}
	if entry.Fields["stage"] != "orient" {
		t.Errorf("stage field = %v, want orient", entry.Fields["stage"])
	}
}

func TestJSONLogger_ChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("rings"))

	logger.SetLevel(ErrorLevel)
	child.Info("suppressed")

	if buf.Len() != 0 {
		t.Errorf("expected child to follow parent level, got %q", buf.String())
	}
	if child.GetLevel() != ErrorLevel {
		t.Errorf("child.GetLevel() = %v, want ErrorLevel", child.GetLevel())
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTextLogger(&buf, DebugLevel)

	logger.Warn("ring search truncated", Int("cap", 2100), String("molecule", "big cage"))

	line := buf.String()
	if !strings.Contains(line, "WARN  ring search truncated") {
		t.Errorf("missing level and message: %q", line)
	}
	if !strings.Contains(line, "cap=2100") {
		t.Errorf("missing cap field: %q", line)
	}
	if !strings.Contains(line, `molecule="big cage"`) {
		t.Errorf("expected quoted value: %q", line)
	}
	if strings.Index(line, "cap=") > strings.Index(line, "molecule=") {
		t.Errorf("expected keys sorted: %q", line)
	}
}

func TestNewSelectsFormat(t *testing.T) {
	if _, ok := New(&bytes.Buffer{}, InfoLevel, TextFormat).(*TextLogger); !ok {
		t.Error("New(TextFormat) did not return a TextLogger")
	}
	if _, ok := New(&bytes.Buffer{}, InfoLevel, JSONFormat).(*JSONLogger); !ok {
		t.Error("New(JSONFormat) did not return a JSONLogger")
	}
}

func TestSetDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, InfoLevel))
	defer SetDefaultLogger(NewNopLogger())

	DefaultLogger().Info("hello")
	if buf.Len() == 0 {
		t.Error("expected output through the replaced default logger")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	op := StartTimer(logger, "enumerate", Stage("rings"))
	if d := op.End(Count(2)); d < 0 {
		t.Errorf("End() = %v, want non-negative", d)
	}

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Level != "DEBUG" {
		t.Errorf("Level = %v, want DEBUG", entry.Level)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Error("expected latency field")
	}
	if entry.Fields["count"] != float64(2) {
		t.Errorf("count field = %v, want 2", entry.Fields["count"])
	}
}

func TestTimedOperation_EndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	StartTimer(logger, "load").EndError(errors.New("truncated file"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Level != "ERROR" || entry.Fields["error"] != "truncated file" {
		t.Errorf("unexpected entry %+v", entry)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("nothing")
	if logger.With(Count(1)) == nil {
		t.Error("With() returned nil")
	}
}
