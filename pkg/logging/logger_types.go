package logging

import (
	"io"
	"strings"
	"sync"
	"time"
)

// Level orders log entries by importance. A run at InfoLevel reports one
// line per reference module; DebugLevel adds one line per annealing restart.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
}

func (l Level) String() string {
	if l < DebugLevel || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps the log_level setting to a Level. Unrecognised values
// fall back to InfoLevel.
func ParseLevel(s string) Level {
	name := strings.ToUpper(s)
	if name == "WARNING" {
		return WarnLevel
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l)
		}
	}
	return InfoLevel
}

// Field is one key of an entry's "fields" object
type Field struct {
	Key   string
	Value any
}

// Logger is implemented by JSONLogger and NopLogger. Engines and runners
// take a Logger so tests can silence them.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child that adds fields to every entry, e.g. the
	// module index for a worker
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// JSONLogger writes one JSON object per line
type JSONLogger struct {
	out    *output
	level  Level
	fields []Field
	mu     sync.Mutex
}

// output is shared by a logger and its children so lines from concurrent
// module workers never interleave
type output struct {
	mu     sync.Mutex
	writer io.Writer
}

// LogEntry is the encoded form of one line
type LogEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(msg string, fields ...Field) {}
func (NopLogger) Info(msg string, fields ...Field)  {}
func (NopLogger) Warn(msg string, fields ...Field)  {}
func (NopLogger) Error(msg string, fields ...Field) {}
func (n NopLogger) With(fields ...Field) Logger     { return n }
func (NopLogger) SetLevel(level Level)              {}
func (NopLogger) GetLevel() Level                   { return InfoLevel }

// NewNopLogger is the default logger of engines and runners
func NewNopLogger() Logger {
	return NopLogger{}
}

// TimedOperation logs a message with its latency when the operation ends
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}
