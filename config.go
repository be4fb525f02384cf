package rollfile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
)

// Config holds all appender configuration values
type Config struct {
	// Identity and target
	Name string `toml:"name"` // Appender name, used in status reports and collision detection
	File string `toml:"file"` // Active log file path

	// Rotation triggers
	MaxSizeKB       int64   `toml:"max_size_kb"`       // Rotate when the active file reaches this size (0=disabled)
	RotateEveryMins float64 `toml:"rotate_every_mins"` // Rotate on a time interval (0=disabled)

	// Retention
	MaxHistory int64   `toml:"max_history"` // Rotated files to keep (0=unlimited)
	MaxAgeHrs  float64 `toml:"max_age_hrs"` // Hours to keep rotated files (0=unlimited)
	Compress   bool    `toml:"compress"`    // Gzip rotated files

	// Naming
	Pattern string `toml:"pattern"` // Rotation pattern registered for collision detection (empty=derived)

	// Write path
	ImmediateFlush bool `toml:"immediate_flush"` // Flush after every write

	// Invocation gate thresholds
	MinDelayMs int64 `toml:"min_delay_ms"` // Calls closer than this raise the gate mask
	MaxDelayMs int64 `toml:"max_delay_ms"` // Calls sparser than this lower the gate mask

	// Default line encoder
	TimestampFormat string `toml:"timestamp_format"` // Time layout for encoded lines (empty=no timestamp)
	Header          string `toml:"header"`           // Line emitted when an output is opened
	Footer          string `toml:"footer"`           // Line emitted when an output is closed
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Name: "rollfile",
	File: "./logs/app.log",

	MaxSizeKB:       10 * sizeMultiplier,
	RotateEveryMins: 0.0,

	MaxHistory: 10,
	MaxAgeHrs:  0.0,
	Compress:   false,

	Pattern: "",

	ImmediateFlush: true,

	MinDelayMs: 100,
	MaxDelayMs: 1000,

	TimestampFormat: time.RFC3339Nano,
	Header:          "",
	Footer:          "",
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("rollfile.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "rollfile.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		key := prefix + tomlTag

		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Float64:
		floatVal, ok := value.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", value)
		}
		field.SetFloat(floatVal)

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmtErrorf("appender name cannot be empty")
	}

	if strings.TrimSpace(c.File) == "" {
		return fmtErrorf("file path cannot be empty")
	}

	if c.MaxSizeKB < 0 || c.MaxHistory < 0 {
		return fmtErrorf("size and history limits cannot be negative")
	}

	if c.RotateEveryMins < 0 || c.MaxAgeHrs < 0 {
		return fmtErrorf("rotation and retention intervals cannot be negative")
	}

	if c.MinDelayMs <= 0 || c.MaxDelayMs <= 0 {
		return fmtErrorf("gate delay thresholds must be positive")
	}

	if c.MinDelayMs >= c.MaxDelayMs {
		return fmtErrorf("min_delay_ms (%d) must be less than max_delay_ms (%d)",
			c.MinDelayMs, c.MaxDelayMs)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
