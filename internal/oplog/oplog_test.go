package oplog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"  DEBUG ", LevelDebug},
		{"nonsense", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLog_WritesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel-actions.log")
	l, err := New(Config{Enabled: true, Level: LevelInfo, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()

	l.Log(ActionCreate, "floating-1700000000000", map[string]interface{}{"width": 400, "title": "Floating Panel"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	line := string(data)
	for _, want := range []string{"[CREATE]", "id=floating-1700000000000", "width=400", `title="Floating Panel"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log entry %q missing %q", line, want)
		}
	}
}

func TestLog_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel-actions.log")
	l, err := New(Config{Enabled: true, Level: LevelInfo, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()

	// LIST logs at debug; the logger is at info.
	l.Log(ActionList, "", map[string]interface{}{"count": 3})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected no entries, got %q", data)
	}
}

func TestLog_DisabledIsNoop(t *testing.T) {
	l, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	// Must not panic or create files.
	l.Log(ActionClose, "floating-1", nil)
	if err := l.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestLog_NilReceiver(t *testing.T) {
	var l *Logger
	l.Log(ActionCreate, "floating-1", nil)
	if err := l.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
