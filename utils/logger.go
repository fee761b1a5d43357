package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents logging verbosity
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger interface defines logging methods
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// SQL/Command specific logging
	LogSQL(sql string, duration time.Duration)
	LogCommand(command string, duration time.Duration)

	// Configuration
	SetLevel(level LogLevel)
	SetOutput(w io.Writer)
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// DefaultLogger is the default logger implementation
type DefaultLogger struct {
	mu     sync.RWMutex
	level  LogLevel
	logger *log.Logger
	prefix string
}

// NewDefaultLogger creates a new default logger writing to stdout
func NewDefaultLogger(prefix string) *DefaultLogger {
	return &DefaultLogger{
		level:  LogLevelInfo,
		logger: log.New(os.Stdout, "", 0),
		prefix: prefix,
	}
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sets the output writer
func (l *DefaultLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// log logs a message at the specified level
func (l *DefaultLogger) log(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.level < level {
		return
	}

	levelStr := ""
	colorCode := ""
	switch level {
	case LogLevelError:
		levelStr = "ERROR"
		colorCode = colorRed
	case LogLevelWarn:
		levelStr = "WARN"
		colorCode = colorYellow
	case LogLevelInfo:
		levelStr = "INFO"
		colorCode = colorGreen
	case LogLevelDebug:
		levelStr = "DEBUG"
		colorCode = colorGray
	}

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	if l.prefix != "" {
		l.logger.Printf("%s [%s] %s%s%s: %s", timestamp, l.prefix, colorCode, levelStr, colorReset, message)
	} else {
		l.logger.Printf("%s %s%s%s: %s", timestamp, colorCode, levelStr, colorReset, message)
	}
}

// Debug logs a debug message
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, format, args...)
}

// Info logs an info message
func (l *DefaultLogger) Info(format string, args ...any) {
	l.log(LogLevelInfo, format, args...)
}

// Warn logs a warning message
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.log(LogLevelWarn, format, args...)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...any) {
	l.log(LogLevelError, format, args...)
}

// LogSQL logs an executed SQL statement with its duration
func (l *DefaultLogger) LogSQL(sql string, duration time.Duration) {
	l.log(LogLevelDebug, "SQL (%v):\n%s", duration, strings.TrimSpace(sql))
}

// LogCommand logs an executed command (MongoDB calls, Redis commands) with
// its duration
func (l *DefaultLogger) LogCommand(command string, duration time.Duration) {
	l.log(LogLevelDebug, "Command (%v):\n%s", duration, strings.TrimSpace(command))
}

// NullLogger is a logger that does nothing
type NullLogger struct{}

func (n *NullLogger) Debug(format string, args ...any)                  {}
func (n *NullLogger) Info(format string, args ...any)                   {}
func (n *NullLogger) Warn(format string, args ...any)                   {}
func (n *NullLogger) Error(format string, args ...any)                  {}
func (n *NullLogger) LogSQL(sql string, duration time.Duration)         {}
func (n *NullLogger) LogCommand(command string, duration time.Duration) {}
func (n *NullLogger) SetLevel(level LogLevel)                           {}
func (n *NullLogger) SetOutput(w io.Writer)                             {}
