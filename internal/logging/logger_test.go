package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// entries decodes the JSON lines written to buf.
func entries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var e map[string]any
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("invalid log line %q: %v", sc.Text(), err)
		}
		out = append(out, e)
	}
	return out
}

// logAll writes one entry at every level, the way the app and the server do.
func logAll(l Logger) {
	l.Debug("evaluated", String("expr", "add 1 2"))
	l.Info("server listening", String("addr", "127.0.0.1:8080"))
	l.Error("server stopped", errors.New("bind: address in use"))
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level string
		want  []string
	}{
		{"debug", []string{"evaluated", "server listening", "server stopped"}},
		{"info", []string{"server listening", "server stopped"}},
		{" WARN ", []string{"server stopped"}},
		{"error", []string{"server stopped"}},
		{"disabled", nil},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			level, err := ParseLevel(tt.level)
			if err != nil {
				t.Fatalf("ParseLevel(%q): %v", tt.level, err)
			}
			var buf bytes.Buffer
			logAll(NewLevelLogger(&buf, "app", level))

			got := entries(t, &buf)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for i, e := range got {
				if e["message"] != tt.want[i] {
					t.Errorf("entry %d message = %v, want %q", i, e["message"], tt.want[i])
				}
				if e["component"] != "app" {
					t.Errorf("entry %d component = %v, want app", i, e["component"])
				}
				if _, ok := e["time"]; !ok {
					t.Errorf("entry %d has no timestamp", i)
				}
			}
		})
	}
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"verbose", "loud", "7x"} {
		if _, err := ParseLevel(name); err == nil {
			t.Errorf("ParseLevel(%q) should fail", name)
		}
	}
}

func TestNewLoggerKeepsDebug(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logAll(NewLogger(&buf, "repl"))
	got := entries(t, &buf)
	if len(got) != 3 || got[0]["level"] != "debug" || got[0]["component"] != "repl" {
		t.Errorf("NewLogger entries = %v", got)
	}
}

func TestFieldEncoding(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewLevelLogger(&buf, "server", zerolog.DebugLevel)
	l.Debug("evaluation failed",
		String("expr", "divexact 7 2"),
		Int("radix", 16),
		Uint64("bits", 1<<40),
		Float64("seconds", 0.25),
		Err(errors.New("inexact")),
		Field{Key: "limit", Value: 2 * time.Second},
		Field{Key: "cached", Value: true},
		Field{Key: "words", Value: []uint32{1, 2}},
	)

	got := entries(t, &buf)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	e := got[0]
	want := map[string]any{
		"expr":    "divexact 7 2",
		"radix":   float64(16),
		"bits":    float64(1 << 40),
		"seconds": 0.25,
		"error":   "inexact",
		"limit":   "2s",
		"cached":  true,
	}
	for k, v := range want {
		if e[k] != v {
			t.Errorf("%s = %v (%T), want %v", k, e[k], e[k], v)
		}
	}
	if words, ok := e["words"].([]any); !ok || len(words) != 2 {
		t.Errorf("words = %v, want a two-element array", e["words"])
	}
}

func TestErrorEntryCarriesCause(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewLevelLogger(&buf, "server", zerolog.ErrorLevel)
	l.Error("failed to write wire response", errors.New("broken pipe"), String("path", "/v1/eval"))

	got := entries(t, &buf)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0]["level"] != "error" || got[0]["error"] != "broken pipe" || got[0]["path"] != "/v1/eval" {
		t.Errorf("entry = %v", got[0])
	}
}

func TestNewDefaultLogger(t *testing.T) {
	t.Parallel()
	var _ Logger = NewDefaultLogger()
}
