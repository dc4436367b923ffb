package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. Development gets the
// human-readable console writer; any other environment logs structured
// JSON. Every entry carries the service name.
func InitLogger(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = newLogger(env, os.Stderr)
}

func newLogger(env string, out io.Writer) zerolog.Logger {
	logger := zerolog.New(out).With().
		Timestamp().
		Str("service", "connect-api").
		Logger()

	if env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true})
	}

	return logger
}

// LogRequest records one handled HTTP request with its outcome
func LogRequest(method, path string, status int, elapsed time.Duration) {
	log.Info().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("elapsed", elapsed).
		Msg("request")
}

func LogInfo(msg string, fields map[string]interface{}) {
	event := log.Info()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func LogError(msg string, err error, fields map[string]interface{}) {
	event := log.Error().Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func LogWarn(msg string, fields map[string]interface{}) {
	event := log.Warn()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
