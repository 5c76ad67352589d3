// Package logging provides the shared console logger.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// New returns a leveled stderr logger. Persistence warnings go through it
// so they never mix with rendered output on stdout.
func New() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          "todoish",
	})
}
