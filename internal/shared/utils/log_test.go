package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLoggerEmitsJSONWithServiceName(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("production", &buf)

	logger.Info().Str("rota", "/health").Msg("request")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "connect-api", entry["service"])
	assert.Equal(t, "/health", entry["rota"])
	assert.Equal(t, "request", entry["message"])
}

func TestDevelopmentLoggerUsesConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("development", &buf)

	logger.Info().Msg("subindo servidor")

	// Console output is human-readable, not a JSON document
	var entry map[string]interface{}
	assert.Error(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, buf.String(), "subindo servidor")
	assert.Contains(t, buf.String(), "connect-api")
}
