package config

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// SetupLogger configures the package-global logrus logger for human-facing
// run output, verbatim teacher style (common/logger.go): colored
// TextFormatter, full timestamps, level from config.
func SetupLogger(cfg *Config) {
	switch cfg.LogLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "TRACE":
		log.SetLevel(log.TraceLevel)
	case "WARN", "WARNING":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:            true,
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05",
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
}

// NewDiagnosticsLogger builds the second, independent logrus.Logger used
// for the one-JSON-object-per-line diagnostics stream (spec.md §7), the
// structured replacement for the original's bare print(json.dumps(...))
// calls. Returns a logger writing to io.Discard when diagnostics are
// disabled, so sim.LogrusDiagnostics never needs a nil check.
func NewDiagnosticsLogger(cfg *Config) (*log.Logger, error) {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})
	logger.SetLevel(log.TraceLevel)

	if !cfg.DiagnosticsEnabled {
		logger.SetOutput(io.Discard)
		return logger, nil
	}

	if cfg.DiagnosticsFile == "" {
		logger.SetOutput(os.Stdout)
		return logger, nil
	}

	f, err := os.OpenFile(cfg.DiagnosticsFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(f)
	return logger, nil
}
