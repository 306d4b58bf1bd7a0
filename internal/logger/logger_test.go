package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		log, err := New(mode, "info")
		require.NoError(t, err)
		assert.NotNil(t, log.SugaredLogger)
	}

	_, err := New("development", "loud")
	assert.Error(t, err)
}

func TestKeyValueLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.Debug("hidden")
	log.With("file", "ventas_raw.csv").Info("cleaned records", "rows_after", 3)
	log.Warn("failed to archive input")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "cleaned records", entry.Message)
	assert.Equal(t, map[string]interface{}{"file": "ventas_raw.csv", "rows_after": int64(3)}, entry.ContextMap())
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Error("discarded", "error", "boom")
	log.Sync()
}
