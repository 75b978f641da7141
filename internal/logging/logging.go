// Package logging builds the process logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"taskflow/internal/config"
)

// New returns a logger writing to w configured from cfg.
// An unknown level falls back to warn; cfg.Debug forces debug.
func New(w io.Writer, cfg *config.Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	switch cfg.LogFormat {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	if cfg.Debug {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
