package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json format emits structured records", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "json", "info")
		log.Info("draft saved", "step", "condition")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "draft saved", record["msg"])
		assert.Equal(t, "condition", record["step"])
	})

	t.Run("level filters lower records", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "text", "warn")
		log.Info("hidden")
		log.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
