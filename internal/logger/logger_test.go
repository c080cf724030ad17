package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/aanand-mishra/college-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONUsesTimeFormatAndName(t *testing.T) {
	cfg := config.ForTest()
	cfg.Log.Format = "json"
	cfg.Log.TimeFormat = time.DateOnly

	var buf bytes.Buffer
	New(cfg, &buf).Info("hello", slog.Int("n", 1))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "college-api-test", rec["app"])
	assert.Equal(t, float64(1), rec["n"])

	_, err := time.Parse(time.DateOnly, rec["time"].(string))
	assert.NoError(t, err)
}

func TestNewRespectsLevel(t *testing.T) {
	cfg := config.ForTest()
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	log := New(cfg, &buf)
	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, ParseLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("whatever"))
}
