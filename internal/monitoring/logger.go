// Package monitoring holds the process-wide logger.
package monitoring

import (
	"io"
	"log"
)

// Logf is the package-level logging function. Defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// WriterLogger returns a Logf-compatible function writing to w.
func WriterLogger(w io.Writer, prefix string) func(format string, v ...interface{}) {
	l := log.New(w, prefix, log.Ltime)
	return l.Printf
}
