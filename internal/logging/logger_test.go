package logging

import (
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		DebugLevel: "DEBUG",
		InfoLevel:  "INFO",
		WarnLevel:  "WARN",
		ErrorLevel: "ERROR",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	// Must not panic.
	OrNop(nil).Info("discarded %d", 1)

	logger := NewComponentLogger("test")
	if OrNop(logger) != logger {
		t.Fatal("OrNop should pass through a non-nil logger")
	}
}

func TestOrNopTypedNil(t *testing.T) {
	var typedNil *FileLogger
	if !IsNil(typedNil) {
		t.Fatal("IsNil should detect a typed-nil logger")
	}
	// Must swap in the no-op logger, not pass the nil receiver through.
	OrNop(typedNil).Debug("discarded")
}

func TestWriterLoggerLevelGate(t *testing.T) {
	var buf strings.Builder
	logger := NewWriterLogger("test", &buf)

	logger.Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug emitted at default level: %q", buf.String())
	}

	logger.SetLevel(DebugLevel)
	logger.Debug("traced %d", 2)
	got := buf.String()
	if !strings.Contains(got, "[DEBUG] [test] traced 2") {
		t.Fatalf("expected debug line after leveling, got %q", got)
	}

	logger.SetLevel(ErrorLevel)
	buf.Reset()
	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("dropped")
	if buf.Len() != 0 {
		t.Fatalf("levels below the gate leaked: %q", buf.String())
	}
}
