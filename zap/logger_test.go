package zap_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/emoscope/zap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	zaplib "go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON entries", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zap.NewLogger(&buf, "info", "json")

		logger.Info("Classifier loaded", zaplib.String("model", "m"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "Classifier loaded", entry["message"])
		assert.Equal(t, "m", entry["model"])
		assert.Contains(t, entry, "timestamp")
	})

	t.Run("console format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zap.NewLogger(&buf, "debug", "console")

		logger.Debug("hello")

		assert.Contains(t, buf.String(), "debug")
		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("filters below level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zap.NewLogger(&buf, "warn", "json")

		logger.Info("quiet")
		logger.Warn("loud")

		assert.NotContains(t, buf.String(), "quiet")
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})

	t.Run("defaults to info level for invalid level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zap.NewLogger(&buf, "invalid", "json")

		logger.Debug("hidden")
		logger.Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
