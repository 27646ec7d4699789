package main

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rivo/tview"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// LogManager manages the log panel and message history
type LogManager struct {
	// textView is the tview component for displaying logs
	textView *tview.TextView

	// messages stores recent log messages
	messages []LogMessage

	// maxMessages is the maximum number of messages to keep
	maxMessages int

	// mu protects concurrent access to messages
	mu sync.Mutex

	// autoScroll controls whether new messages auto-scroll
	autoScroll bool

	now func() time.Time
}

// LogMessage represents a single log entry
type LogMessage struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// NewLogManager creates a new log manager
func NewLogManager(maxMessages int) *LogManager {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(maxMessages)

	textView.SetBorder(true).SetTitle(" Logs ")

	return &LogManager{
		textView:    textView,
		messages:    make([]LogMessage, 0, maxMessages),
		maxMessages: maxMessages,
		autoScroll:  true,
		now:         time.Now,
	}
}

// GetView returns the tview component
func (lm *LogManager) GetView() tview.Primitive {
	return lm.textView
}

// Mirror adapts the manager to a structured logger's mirror callback.
func (lm *LogManager) Mirror(level slog.Level, msg string) {
	lm.AddLog(levelFromSlog(level), "%s", msg)
}

func levelFromSlog(level slog.Level) LogLevel {
	switch {
	case level >= slog.LevelError:
		return LogLevelError
	case level >= slog.LevelWarn:
		return LogLevelWarn
	case level >= slog.LevelInfo:
		return LogLevelInfo
	default:
		return LogLevelDebug
	}
}

// AddLog adds a log message with the specified level
func (lm *LogManager) AddLog(level LogLevel, format string, args ...any) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.messages = append(lm.messages, LogMessage{
		Time:    lm.now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})

	// Trim old messages if we exceed max
	if len(lm.messages) > lm.maxMessages {
		lm.messages = lm.messages[len(lm.messages)-lm.maxMessages:]
	}

	lm.refresh()
}

// Messages returns a copy of the retained messages.
func (lm *LogManager) Messages() []LogMessage {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	out := make([]LogMessage, len(lm.messages))
	copy(out, lm.messages)
	return out
}

// refresh updates the text view with current messages
func (lm *LogManager) refresh() {
	lm.textView.Clear()

	for _, msg := range lm.messages {
		fmt.Fprint(lm.textView, formatLogLine(msg))
	}

	if lm.autoScroll {
		lm.textView.ScrollToEnd()
	}
}

// formatLogLine renders [HH:MM:SS] LEVEL Message with color tags.
func formatLogLine(msg LogMessage) string {
	levelStr := fmt.Sprintf("[%s]%-5s[-]", colorForLevel(msg.Level), msg.Level)
	return fmt.Sprintf("[gray]%s[-] %s %s\n", msg.Time.Format("15:04:05"), levelStr, tview.Escape(msg.Message))
}

// colorForLevel returns the tview color tag for a log level
func colorForLevel(level LogLevel) string {
	switch level {
	case LogLevelDebug:
		return "gray"
	case LogLevelWarn:
		return "yellow"
	case LogLevelError:
		return "red"
	default:
		return "white"
	}
}

// SetAutoScroll enables or disables automatic scrolling. Enabling it jumps
// back to the newest message.
func (lm *LogManager) SetAutoScroll(enabled bool) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.autoScroll = enabled
	if enabled {
		lm.textView.ScrollToEnd()
	}
}

// AutoScroll reports whether new messages scroll the panel.
func (lm *LogManager) AutoScroll() bool {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	return lm.autoScroll
}
