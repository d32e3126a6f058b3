package app

import (
	"log"
	"os"
)

// Logger is a thin level-prefixed wrapper around the standard library's
// log.Logger, matching this tree's ambient convention of logging through
// stdlib log rather than a structured logging dependency.
type Logger struct {
	*log.Logger
	component string
}

// NewLogger returns a Logger prefixing every message with "[component] ".
func NewLogger(component string) *Logger {
	return &Logger{
		Logger:    log.New(os.Stderr, "", log.LstdFlags),
		component: component,
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.Printf("[%s] "+format, prepend(l.component, args)...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("[%s] WARNING: "+format, prepend(l.component, args)...)
}

func prepend(component string, args []any) []any {
	out := make([]any, 0, len(args)+1)
	out = append(out, component)
	out = append(out, args...)
	return out
}
