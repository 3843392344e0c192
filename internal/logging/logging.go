// Package logging configures the host's structured logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to stderr at the given level. Unknown
// levels fall back to info.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
