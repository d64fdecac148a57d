// Package logger is a small leveled wrapper over the standard library
// log package. Verbosity is set once at startup; call sites stay free of
// level checks.
package logger

import (
	"log"
	"os"
)

type Level int

const (
	Error Level = iota
	Info
	Debug
)

var current Level = Info

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags)
}

// SetVerbosity sets the global logging verbosity, typically once after
// flag parsing.
func SetVerbosity(v int) {
	current = Level(v)
}

func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		log.Printf(prefix+format, args...)
	}
}

func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

func Infof(format string, args ...any) {
	logf(Info, "[INFO] ", format, args...)
}

func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}
