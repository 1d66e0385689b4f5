package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/station-portal/internal/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger.SetupWriter(&buf, "PROD", false)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Str("path", "/login").Msg("hello")
	log.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "hello", entry["message"])
	require.Equal(t, "/login", entry["path"])
	require.Equal(t, "info", entry["level"])
}

func TestSetupWriter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger.SetupWriter(&buf, "PROD", true)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Msg("visible")
	require.Contains(t, buf.String(), "visible")
}

func TestSetupWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger.SetupWriter(&buf, "DEV", false)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("console line")
	require.Contains(t, buf.String(), "console line")
	require.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
