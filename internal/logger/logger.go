// Package logger provides the logging sink threaded through an analysis run.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// Logger interface provides logging capabilities.
type Logger interface {
	// Logf logs an informational message.
	Logf(format string, args ...interface{})

	// Warnf logs a recoverable problem (unreadable file, malformed manifest).
	Warnf(format string, args ...interface{})

	// Tracef logs low-level detail that is only shown in verbose mode.
	Tracef(format string, args ...interface{})
}

type noopLogger struct{}

// NewNoopLogger creates a logger that discards everything.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (n *noopLogger) Logf(_ string, _ ...interface{})   {}
func (n *noopLogger) Warnf(_ string, _ ...interface{})  {}
func (n *noopLogger) Tracef(_ string, _ ...interface{}) {}

// defaultLogger is a thread-safe logger writing one line per message.
type defaultLogger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

// NewDefaultLogger creates a logger writing to out. Trace messages are
// dropped unless verbose is set.
func NewDefaultLogger(out io.Writer, verbose bool) Logger {
	return &defaultLogger{out: out, verbose: verbose}
}

func (d *defaultLogger) Logf(format string, args ...interface{}) {
	d.write("", format, args...)
}

func (d *defaultLogger) Warnf(format string, args ...interface{}) {
	d.write("warning: ", format, args...)
}

func (d *defaultLogger) Tracef(format string, args ...interface{}) {
	if !d.verbose {
		return
	}
	d.write("trace: ", format, args...)
}

func (d *defaultLogger) write(prefix, format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, prefix+format+"\n", args...)
}

// OrNoop returns l, or a noop logger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NewNoopLogger()
	}
	return l
}
