package output

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// TraceLogger writes kernel dispatch/retry trace lines to a colored
// console writer, the same way ConsoleOutput writes violations: plain
// text, every line in one gray color, not a structured logging
// library.
type TraceLogger struct {
	writer  io.Writer
	noColor bool
}

// NewTraceLogger returns a TraceLogger writing to stdout.
func NewTraceLogger() *TraceLogger {
	return &TraceLogger{writer: os.Stdout}
}

// WithWriter sets a custom writer.
func (t *TraceLogger) WithWriter(w io.Writer) *TraceLogger {
	t.writer = w
	return t
}

// WithNoColor disables colors.
func (t *TraceLogger) WithNoColor(v bool) *TraceLogger {
	t.noColor = v
	if v {
		color.NoColor = true
	}
	return t
}

// Tracef implements kernel.Logger.
func (t *TraceLogger) Tracef(format string, args ...any) {
	gray := color.New(color.FgHiBlack)
	gray.Fprintf(t.writer, "trace: "+format+"\n", args...)
}
