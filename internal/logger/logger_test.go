package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

func TestNew_Level(t *testing.T) {
	cases := map[string]zap.AtomicLevel{
		"debug": zap.NewAtomicLevelAt(zap.DebugLevel),
		"warn":  zap.NewAtomicLevelAt(zap.WarnLevel),
		"":      zap.NewAtomicLevelAt(zap.InfoLevel),
	}

	for raw, want := range cases {
		log, err := New(&config.Config{Env: "production", LogLevel: raw})
		require.NoError(t, err)

		assert.True(t, log.Core().Enabled(want.Level()), raw)
		assert.False(t, log.Core().Enabled(want.Level()-1), raw)
	}
}

func TestNew_Development(t *testing.T) {
	log, err := New(&config.Config{Env: "development", LogLevel: "info"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}
