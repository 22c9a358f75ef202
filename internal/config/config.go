package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/spf13/viper"

	"github.com/audree-labs/layergen/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known settings.
const (
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyColor     = "color"
)

var (
	// ErrUnknownKey is returned by Set for keys outside the known settings.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned by Set when a value is not allowed for its key.
	ErrInvalidValue = errors.New("invalid config value")
)

type setting struct {
	def     string
	allowed []string
}

var settings = map[string]setting{
	KeyLogLevel:  {def: "warn", allowed: []string{"debug", "info", "warn", "error"}},
	KeyLogFormat: {def: "text", allowed: []string{"text", "json"}},
	KeyColor:     {def: "auto", allowed: []string{"auto", "always", "never"}},
}

// Dir returns the path to the user config directory (~/.layergen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.layergen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Environment variables such as LAYERGEN_LOG_LEVEL override the file.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	for key, s := range settings {
		viper.SetDefault(key, s.def)
	}

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Keys returns the known setting names, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Allowed returns the accepted values for key, or nil for unknown keys.
func Allowed(key string) []string {
	return settings[key].allowed
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	s, ok := settings[key]
	if !ok {
		return fmt.Errorf("%w: %s (known keys: %v)", ErrUnknownKey, key, Keys())
	}
	if !slices.Contains(s.allowed, value) {
		return fmt.Errorf("%w: %s=%s (allowed: %v)", ErrInvalidValue, key, value, s.allowed)
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
