// Package console provides a logger backend that writes styled,
// leveled output to stderr.
package console

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger writes log messages to the terminal.
type Logger struct {
	inner *log.Logger
}

// Params configures a console logger.
type Params struct {
	Debug bool
}

// New creates a console logger. Debug-level messages are suppressed
// unless Params.Debug is set.
func New(params Params) *Logger {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	return &Logger{
		inner: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           level,
		}),
	}
}

// Log writes a message at the default level.
func (c *Logger) Log(message string, keyvals ...any) {
	c.inner.Print(message, keyvals...)
}

// Debug writes a message at DEBUG level.
func (c *Logger) Debug(message string, keyvals ...any) {
	c.inner.Debug(message, keyvals...)
}

// Info writes a message at INFO level.
func (c *Logger) Info(message string, keyvals ...any) {
	c.inner.Info(message, keyvals...)
}

// Warn writes a message at WARN level.
func (c *Logger) Warn(message string, keyvals ...any) {
	c.inner.Warn(message, keyvals...)
}

// Error writes a message at ERROR level.
func (c *Logger) Error(message string, keyvals ...any) {
	c.inner.Error(message, keyvals...)
}

// Fatal writes a message at FATAL level and terminates the program.
func (c *Logger) Fatal(message string, keyvals ...any) {
	c.inner.Fatal(message, keyvals...)
}
