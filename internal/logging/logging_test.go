package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Warn)
	logger.Info("hidden")
	logger.Warn("shown", F("key", "value"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") || !strings.Contains(out, `"key": "value"`) {
		t.Fatalf("unexpected output: %q", out)
	}
	if logger.Enabled(Info) || !logger.Enabled(Error) {
		t.Fatalf("unexpected Enabled results")
	}
}

func TestLoggerWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Debug).With(F("component", "store"))
	logger.Error("save failed", F("error", errors.New("disk full")))

	out := buf.String()
	if !strings.Contains(out, `"component": "store"`) || !strings.Contains(out, "disk full") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "keepnotes.log")
	logger, closer, err := NewFile(path, Info)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	logger.Info("first")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "first") {
		t.Fatalf("expected entry in log file: %q", data)
	}
}

func TestNopIsSilent(t *testing.T) {
	logger := Nop()
	logger.Error("nothing")
	if logger.Enabled(Error) {
		t.Fatalf("nop logger should report disabled")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": Debug, " WARN ": Warn, "warning": Warn, "error": Error, "": Info, "bogus": Info}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
