package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"synergyai.app/internal/ports"
)

func TestSlogLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogLoggerAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	adapter.Debug("hidden")
	adapter.Warn("warm failed", ports.F("entity", "alerts"), ports.F("error", fmt.Errorf("db down")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "warm failed", entry["msg"])
	assert.Equal(t, "alerts", entry["entity"])
	assert.Equal(t, "db down", entry["error"])
}
