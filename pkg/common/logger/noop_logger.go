package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Layr-Labs/vyperkit/pkg/common/iface"
)

const (
	LevelTitle = "TITLE"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
)

// LogEntry is one buffered message
type LogEntry struct {
	Level   string
	Message string
}

// NoopLogger prints nothing and buffers every message so tests can assert
// on it. It is safe for concurrent use.
type NoopLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

func NewNoopLogger() *NoopLogger {
	return &NoopLogger{entries: make([]LogEntry, 0)}
}

func (l *NoopLogger) Title(msg string, args ...any) {
	l.add(LevelTitle, fmt.Sprintf("\n"+msg+"\n", args...))
}

func (l *NoopLogger) Info(msg string, args ...any)  { l.addf(LevelInfo, msg, args...) }
func (l *NoopLogger) Warn(msg string, args ...any)  { l.addf(LevelWarn, msg, args...) }
func (l *NoopLogger) Error(msg string, args ...any) { l.addf(LevelError, msg, args...) }
func (l *NoopLogger) Debug(msg string, args ...any) { l.addf(LevelDebug, msg, args...) }

// addf drops blank messages the same way the real loggers do
func (l *NoopLogger) addf(level, msg string, args ...any) {
	msg = strings.Trim(msg, "\n")
	if msg == "" {
		return
	}
	l.add(level, fmt.Sprintf(msg, args...))
}

func (l *NoopLogger) add(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: message})
}

// GetEntries returns a copy of the buffer
func (l *NoopLogger) GetEntries() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// GetMessages returns every buffered message in order
func (l *NoopLogger) GetMessages() []string {
	return l.GetMessagesByLevel("")
}

// GetMessagesByLevel returns the messages logged at level ("" for all)
func (l *NoopLogger) GetMessagesByLevel(level string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var messages []string
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			messages = append(messages, e.Message)
		}
	}
	return messages
}

func (l *NoopLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

func (l *NoopLogger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Contains reports whether any message contains text
func (l *NoopLogger) Contains(text string) bool {
	return l.ContainsLevel("", text)
}

// ContainsLevel reports whether a message at level ("" for any) contains text
func (l *NoopLogger) ContainsLevel(level, text string) bool {
	for _, m := range l.GetMessagesByLevel(level) {
		if strings.Contains(m, text) {
			return true
		}
	}
	return false
}

// NoopProgressTracker discards progress updates
type NoopProgressTracker struct{}

func NewNoopProgressTracker() *NoopProgressTracker {
	return &NoopProgressTracker{}
}

func (n *NoopProgressTracker) ProgressRows() []iface.ProgressRow { return []iface.ProgressRow{} }
func (n *NoopProgressTracker) Set(string, int, string)           {}
func (n *NoopProgressTracker) Render()                           {}
func (n *NoopProgressTracker) Clear()                            {}
