// Package logging provides the standard-library logger configuration
// shared by the loader, terrain source, and cmd/worldsim: a prefixed
// *log.Logger passed down through struct fields rather than reached for
// as a global.
package logging

import (
	"log"
	"os"
)

// New returns a *log.Logger writing to stderr with the given prefix and
// date/time flags, matching the teacher's main()-configured logger shape.
func New(prefix string) *log.Logger {
	if prefix != "" {
		prefix = prefix + ": "
	}
	return log.New(os.Stderr, prefix, log.Ldate|log.Ltime)
}

// OrDefault returns l if non-nil, otherwise the standard library's
// default logger. Collaborators hold a *log.Logger field that may be
// left zero-valued by a caller that doesn't care about log output.
func OrDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
