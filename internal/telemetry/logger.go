// Package telemetry carries the module's ambient observability stack:
// structured logging and Prometheus metrics. Neither feeds back into the
// physics itself — they are advisory. The physics and ECS packages do not
// log: a zeroed Christoffel evaluation, a super-extremal Kerr horizon or a
// skipped ECS chunk produces no log record.
//
// The logger wraps logrus with the same JSON-formatter setup as
// Valkyrie/pkg/utils/logger.go, but is constructed and passed explicitly
// rather than reached for as a package-level global — the open design
// notes call out singleton state as something to avoid in new code.
package telemetry

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a *logrus.Logger at the given level ("debug", "info",
// "warn", "error") writing JSON-formatted records to output ("stdout",
// "stderr", or any other value falls back to stdout).
func NewLogger(level, output string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	switch output {
	case "stderr":
		log.SetOutput(os.Stderr)
	default:
		log.SetOutput(os.Stdout)
	}

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
