package pipe

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig([]byte("name: checkout\nstop_on_false: true\nlog_level: warn\n"))
	require.NoError(t, err)

	assert.Equal(t, "checkout", cfg.Name)
	assert.True(t, cfg.StopOnFalse)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig([]byte("stop_on_false: true\n"))
	require.NoError(t, err)

	assert.Equal(t, "chain", cfg.Name)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.StopOnFalse)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig([]byte("log_level: loud\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig([]byte("name: [unterminated\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_EmptyLevelIsDebug(t *testing.T) {
	t.Parallel()

	level, err := Config{}.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
