package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json format with level filtering", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: "warn", Format: logger.FormatJSON}, logger.WithOutput(&buf))

		log.Info("dropped")
		log.Warn("kept", logger.Component("proxy"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "kept", record["msg"])
		assert.Equal(t, "proxy", record["component"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: "loud"}, logger.WithOutput(&buf))

		log.Debug("dropped")
		log.Info("kept")

		assert.Contains(t, buf.String(), "kept")
		assert.NotContains(t, buf.String(), "dropped")
	})

	t.Run("static attrs on every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Format: logger.FormatText},
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "gesneu-web")),
		)
		log.Info("hello")

		assert.Contains(t, buf.String(), "service=gesneu-web")
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, "usuario", logger.Usuario("GESNEU").Key)
	assert.Equal(t, int64(502), logger.Status(502).Value.Int64())
}
