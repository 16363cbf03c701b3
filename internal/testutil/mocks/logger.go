package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []interface{}
}

// Field returns the value logged under key, if any.
func (e LogEntry) Field(key string) (interface{}, bool) {
	for i := 0; i < len(e.Fields)-1; i += 2 {
		if k, ok := e.Fields[i].(string); ok && k == key {
			return e.Fields[i+1], true
		}
	}
	return nil, false
}

// Logger is a mock logging.Logger that records every entry.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogger creates a new mock Logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Debug(msg string, fields ...interface{}) { l.record("debug", msg, fields) }
func (l *Logger) Info(msg string, fields ...interface{})  { l.record("info", msg, fields) }
func (l *Logger) Warn(msg string, fields ...interface{})  { l.record("warn", msg, fields) }
func (l *Logger) Error(msg string, fields ...interface{}) { l.record("error", msg, fields) }

func (l *Logger) record(level, msg string, fields []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Fields: fields})
}

// Entries returns the entries recorded at level, or all entries when level is empty.
func (l *Logger) Entries(level string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]LogEntry, 0, len(l.entries))
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			result = append(result, e)
		}
	}
	return result
}

// Contains reports whether any recorded message or field value contains s.
func (l *Logger) Contains(s string) bool {
	for _, e := range l.Entries("") {
		if strings.Contains(e.Message, s) {
			return true
		}
		for _, f := range e.Fields {
			if strings.Contains(fmt.Sprint(f), s) {
				return true
			}
		}
	}
	return false
}

var _ logging.Logger = (*Logger)(nil)
