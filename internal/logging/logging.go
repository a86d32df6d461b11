// Package logging provides the package-level structured logger used by the
// façade, following the zerolog-based pattern in
// YuminosukeSato-scigo's pkg/errors (structured fields over fmt.Printf).
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)

	warningHandler = func(w error) {
		logger.Warn().Err(w).Msg("gotree warning")
	}
)

// SetLogger replaces the package-level logger, e.g. to redirect to JSON
// output or raise the level for debugging a build.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the current package-level logger.
func Logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// SetWarningHandler overrides how Warn delivers a warning, mirroring scigo's
// errors.SetWarningHandler so callers can suppress or redirect warnings
// passed to Warn.
func SetWarningHandler(h func(w error)) {
	mu.Lock()
	defer mu.Unlock()
	warningHandler = h
}

// Warn raises a non-fatal warning through the installed handler.
func Warn(w error) {
	mu.Lock()
	h := warningHandler
	mu.Unlock()
	h(w)
}
