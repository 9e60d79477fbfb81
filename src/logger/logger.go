package logger

import (
	"fmt"
	"io"
	"os"
)

// Logger is the logging capability handed to the API client and the build
// poller at construction time. Keeping it injected (instead of a package-level
// global) lets callers running several pollers attribute log lines to
// separate streams.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// ConsoleLogger writes human-readable log lines, info and debug to one
// stream and errors to another.
type ConsoleLogger struct {
	out io.Writer
	err io.Writer
}

// NewConsoleLogger logs to stdout/stderr.
func NewConsoleLogger() *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stdout, os.Stderr)
}

// NewConsoleLoggerTo logs to the given streams. Callers watching several
// builds hand each poller its own writer pair.
func NewConsoleLoggerTo(out, err io.Writer) *ConsoleLogger {
	return &ConsoleLogger{out: out, err: err}
}

func (c *ConsoleLogger) Info(msg string, args ...interface{}) {
	fmt.Fprintf(c.out, "[INFO] "+msg+"\n", args...)
}

func (c *ConsoleLogger) Error(msg string, args ...interface{}) {
	fmt.Fprintf(c.err, "[ERROR] "+msg+"\n", args...)
}

func (c *ConsoleLogger) Debug(msg string, args ...interface{}) {
	fmt.Fprintf(c.out, "[DEBUG] "+msg+"\n", args...)
}

// SilentLogger discards all log messages.
// Used in watch mode so log output does not interfere with the display.
type SilentLogger struct{}

func NewSilentLogger() *SilentLogger {
	return &SilentLogger{}
}

func (s *SilentLogger) Info(msg string, args ...interface{})  {}
func (s *SilentLogger) Error(msg string, args ...interface{}) {}
func (s *SilentLogger) Debug(msg string, args ...interface{}) {}
