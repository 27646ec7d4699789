package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn", nil)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("shown warn", slog.Int("flight", 3))
	l.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("records below warn were written:\n%s", out)
	}

	var lines []map[string]any
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line is not JSON: %q", sc.Text())
		}
		lines = append(lines, m)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d records, want 2", len(lines))
	}
	if lines[0]["msg"] != "shown warn" || lines[0]["flight"] != float64(3) {
		t.Errorf("first record = %v", lines[0])
	}
}

func TestInvalidLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "chatty", nil)
	if !strings.Contains(buf.String(), "invalid log level") {
		t.Errorf("expected a warning about the level, got %q", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
	if l.With("k", "v") != nil {
		t.Error("With on nil logger should stay nil")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestMirror(t *testing.T) {
	type rec struct {
		level slog.Level
		msg   string
	}
	var got []rec
	l := NewWithWriter(&bytes.Buffer{}, "info", func(level slog.Level, msg string) {
		got = append(got, rec{level, msg})
	})

	l.Debug("filtered")
	l.With("component", "scene").Info("resized")
	l.Error("boom")

	want := []rec{{slog.LevelInfo, "resized"}, {slog.LevelError, "boom"}}
	if len(got) != len(want) {
		t.Fatalf("mirrored %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globe.log")
	l := New(Options{Level: "debug", File: path})
	l.Info("flight spawned", slog.Int("id", 1))
	if err := l.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "flight spawned") {
		t.Errorf("log file missing record:\n%s", data)
	}
	if l.LogFile == "" {
		t.Error("LogFile not recorded")
	}
}

func TestNewWithoutFile(t *testing.T) {
	l := New(Options{})
	l.Info("discarded")
	if l.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", l.LogFile)
	}
}
