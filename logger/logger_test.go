package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("warn", "text")
	log.SetOutput(&buf)

	log.Info("hidden")
	log.Debug("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("below-level message logged: %q", out)
	}
	if !strings.Contains(out, "shown 1") {
		t.Fatalf("warn message missing: %q", out)
	}
	if log.Level() != "warn" {
		t.Fatalf("level=%q, want warn", log.Level())
	}
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("debug", "json")
	log.SetOutput(&buf)

	log.LogEntry("cn", 3, "full", "x.com", "ads", "block")
	log.LogSummary("rule.db", 2, map[string]int{"direct": 2}, 15)
	log.LogError("导出", errors.New("boom"), map[string]interface{}{"file": "cn"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%d, want 3: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["target"] != "x.com" || entry["action"] != "block" || entry["line"] != float64(3) {
		t.Fatalf("entry=%v", entry)
	}

	var summary map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &summary); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if summary["records"] != float64(2) || summary["direct"] != float64(2) || summary["level"] != "info" {
		t.Fatalf("summary=%v", summary)
	}

	var failure map[string]interface{}
	if err := json.Unmarshal([]byte(lines[2]), &failure); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if failure["error"] != "boom" || failure["file"] != "cn" {
		t.Fatalf("error=%v", failure)
	}
}
