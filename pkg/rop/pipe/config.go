package pipe

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
)

// Config holds chain-wide settings.
type Config struct {
	// Name labels the chain in log records.
	Name string `yaml:"name"`

	// StopOnFalse is the default branch behavior for guarded steps.
	StopOnFalse bool `yaml:"stop_on_false"`

	// LogLevel is the level step events are logged at ("debug", "info", ...).
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Name:     "chain",
		LogLevel: "debug",
	}
}

// LoadConfig decodes YAML on top of DefaultConfig and validates the result.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty LogLevel means debug.
func (c Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
