package main

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jeslor/globe-with-connecting-cities/internal/logging"
	"github.com/jeslor/globe-with-connecting-cities/internal/raster"
)

func TestLogManagerTrims(t *testing.T) {
	lm := NewLogManager(3)
	for i := 0; i < 5; i++ {
		lm.AddLog(LogLevelInfo, "message %d", i)
	}

	msgs := lm.Messages()
	if len(msgs) != 3 {
		t.Fatalf("%d messages kept, want 3", len(msgs))
	}
	if msgs[0].Message != "message 2" || msgs[2].Message != "message 4" {
		t.Errorf("kept %q .. %q, want the newest three", msgs[0].Message, msgs[2].Message)
	}
}

func TestLogManagerMirror(t *testing.T) {
	lm := NewLogManager(10)
	log := logging.NewWithWriter(&strings.Builder{}, "debug", lm.Mirror)

	log.Debug("spawned")
	log.Warn("slow frame")
	log.Error("resize failed")

	msgs := lm.Messages()
	want := []LogLevel{LogLevelDebug, LogLevelWarn, LogLevelError}
	if len(msgs) != len(want) {
		t.Fatalf("%d mirrored messages, want %d", len(msgs), len(want))
	}
	for i, lvl := range want {
		if msgs[i].Level != lvl {
			t.Errorf("message %d level = %s, want %s", i, msgs[i].Level, lvl)
		}
	}
}

func TestFormatLogLine(t *testing.T) {
	msg := LogMessage{
		Time:    time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC),
		Level:   LogLevelWarn,
		Message: "city [Paris] missing",
	}
	got := formatLogLine(msg)

	if !strings.HasPrefix(got, "[gray]13:04:05[-] [yellow]WARN [-]") {
		t.Errorf("formatLogLine = %q", got)
	}
	// Brackets in the message must not be read as color tags
	if !strings.Contains(got, "[Paris[]") {
		t.Errorf("message not escaped: %q", got)
	}
}

func TestLevelFromSlog(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want LogLevel
	}{
		{slog.LevelDebug, LogLevelDebug},
		{slog.LevelInfo, LogLevelInfo},
		{slog.LevelWarn, LogLevelWarn},
		{slog.LevelError, LogLevelError},
		{slog.LevelError + 4, LogLevelError},
	}
	for _, tt := range tests {
		if got := levelFromSlog(tt.in); got != tt.want {
			t.Errorf("levelFromSlog(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStyleFor(t *testing.T) {
	fg := func(s tcell.Style) tcell.Color {
		c, _, _ := s.Decompose()
		return c
	}

	city := styleFor(raster.Cell{Kind: raster.City, Rune: '●'})
	if fg(city) != tcell.ColorYellow {
		t.Errorf("city color = %v, want yellow", fg(city))
	}
	if fg(styleFor(raster.Cell{Kind: raster.Globe, Rune: 'o'})) != tcell.ColorDarkCyan {
		t.Error("rim is not dark cyan")
	}

	bright := fg(styleFor(raster.Cell{Kind: raster.Arc, Intensity: 1}))
	dim := fg(styleFor(raster.Cell{Kind: raster.Arc, Intensity: 0}))
	_, gb, _ := bright.RGB()
	_, gd, _ := dim.RGB()
	if gb != 255 || gd != 80 {
		t.Errorf("arc green = %d..%d, want 80..255", gd, gb)
	}
}
