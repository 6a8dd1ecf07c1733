package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ainews-backend/internal/handler/http/requestid"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	t.Run("adds request id from context", func(t *testing.T) {
		buf.Reset()
		ctx := requestid.WithRequestID(context.Background(), "req-42")

		WithRequestID(ctx, logger).Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "req-42", entry["request_id"])
	})

	t.Run("unchanged without request id", func(t *testing.T) {
		buf.Reset()
		WithRequestID(context.Background(), logger).Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		_, ok := entry["request_id"]
		assert.False(t, ok)
	})
}
