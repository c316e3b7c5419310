package logger

import (
	"io"
	"log"
	"os"
)

// Log flags
const (
	LstdFlags     = log.LstdFlags
	Lmicroseconds = log.Lmicroseconds
)

// Logger wraps the standard log.Logger with a verbose switch
type Logger struct {
	*log.Logger
	verbose bool
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
	}
}

// NewWriter creates a new logger that writes to the provided writer
func NewWriter(w io.Writer) *Logger {
	return &Logger{
		Logger: log.New(w, "", log.LstdFlags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard)
}

// SetVerbose enables Debugf output
func (l *Logger) SetVerbose(v bool) {
	l.verbose = v
}

// Verbose reports whether Debugf output is enabled
func (l *Logger) Verbose() bool {
	return l.verbose
}

// Debugf logs only in verbose mode
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.verbose {
		l.Printf(format, args...)
	}
}
