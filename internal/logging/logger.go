package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"
)

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Level represents the severity of a log message.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

const logFileName = ".asana-update-summarizer.log"

var (
	fileLoggerOnce sync.Once
	fileLogger     *log.Logger
)

// FileLogger writes timestamped lines to a dotfile in the user's home
// directory so interactive stdout stays clean. The file handle is shared by
// every component logger in the process.
type FileLogger struct {
	component string
	level     Level
	mu        sync.Mutex
	out       *log.Logger
}

// NewComponentLogger returns a file-backed logger scoped to component.
// When the log file cannot be opened the logger silently discards output.
func NewComponentLogger(component string) *FileLogger {
	fileLoggerOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		file, err := os.OpenFile(filepath.Join(home, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		fileLogger = log.New(file, "", 0)
	})
	return &FileLogger{component: component, level: InfoLevel, out: fileLogger}
}

// NewWriterLogger returns a logger scoped to component that writes to w
// instead of the shared log file.
func NewWriterLogger(component string, w io.Writer) *FileLogger {
	return &FileLogger{component: component, level: InfoLevel, out: log.New(w, "", 0)}
}

// SetLevel sets the minimum level this logger emits.
func (l *FileLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *FileLogger) logf(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil || level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.out.Printf("[%s] [%s] [%s] %s", time.Now().Format("2006-01-02 15:04:05.000"), level, l.component, msg)
}

func (l *FileLogger) Debug(format string, args ...any) { l.logf(DebugLevel, format, args...) }
func (l *FileLogger) Info(format string, args ...any)  { l.logf(InfoLevel, format, args...) }
func (l *FileLogger) Warn(format string, args ...any)  { l.logf(WarnLevel, format, args...) }
func (l *FileLogger) Error(format string, args ...any) { l.logf(ErrorLevel, format, args...) }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// IsNil reports whether logger is nil or wraps a nil pointer receiver.
func IsNil(logger Logger) bool {
	if logger == nil {
		return true
	}
	val := reflect.ValueOf(logger)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return val.IsNil()
	default:
		return false
	}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if IsNil(logger) {
		return Nop()
	}
	return logger
}
