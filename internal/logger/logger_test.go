package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	return entry
}

func TestJSONFieldNames(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info("hello")

	entry := logLine(t, &buf)
	if _, ok := entry["timestamp"]; !ok {
		t.Error("missing timestamp field")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
}

func TestWarnLevelSpelledOut(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Warn("careful")

	if entry := logLine(t, &buf); entry["level"] != "warning" {
		t.Errorf("level = %v, want warning", entry["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output below error level, got %s", buf.String())
	}
}

func TestContextFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf).
		WithModule("webhook").
		WithConversation("c1").
		WithError(errors.New("boom")).
		WithField("intent", "Hours")

	log.Info("processed")

	entry := logLine(t, &buf)
	if entry["module"] != "webhook" {
		t.Errorf("module = %v, want webhook", entry["module"])
	}
	if entry["conversation_id"] != "c1" {
		t.Errorf("conversation_id = %v, want c1", entry["conversation_id"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
	if entry["intent"] != "Hours" {
		t.Errorf("intent = %v, want Hours", entry["intent"])
	}
}
