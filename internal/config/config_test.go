package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestLoadDefaults(t *testing.T) {
	setupHome(t)
	Load()

	assert.Equal(t, "warn", Get(KeyLogLevel))
	assert.Equal(t, "text", Get(KeyLogFormat))
	assert.Equal(t, "auto", Get(KeyColor))
}

func TestSetPersists(t *testing.T) {
	home := setupHome(t)
	Load()

	require.NoError(t, Set(KeyLogLevel, "debug"))
	assert.Equal(t, filepath.Join(home, ".layergen", "config.yaml"), FilePath())

	data, err := os.ReadFile(FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "log_level: debug")

	viper.Reset()
	Load()
	assert.Equal(t, "debug", Get(KeyLogLevel))
}

func TestSetRejectsUnknownKeyAndValue(t *testing.T) {
	setupHome(t)
	Load()

	assert.ErrorIs(t, Set("theme", "dark"), ErrUnknownKey)
	assert.ErrorIs(t, Set(KeyLogFormat, "xml"), ErrInvalidValue)

	_, err := os.Stat(FilePath())
	assert.True(t, os.IsNotExist(err))
}

func TestEnvOverridesFile(t *testing.T) {
	setupHome(t)
	Load()
	require.NoError(t, Set(KeyLogFormat, "text"))

	t.Setenv("LAYERGEN_LOG_FORMAT", "json")
	viper.Reset()
	Load()

	assert.Equal(t, "json", Get(KeyLogFormat))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"color", "log_format", "log_level"}, Keys())
	assert.Equal(t, []string{"auto", "always", "never"}, Allowed(KeyColor))
	assert.Nil(t, Allowed("theme"))
}
