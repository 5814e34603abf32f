package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_FormatsMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: "info", Output: &buf})

	log.Info("ranking %s has %d entries", "abc", 3)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "ranking abc has 3 entries", line["msg"])
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: "warn", Output: &buf})

	log.Debug("hidden")
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestGetLoggerLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, getLoggerLevel("ERROR"))
	assert.Equal(t, slog.LevelDebug, getLoggerLevel("unknown"))
}
