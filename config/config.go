package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/projecteru2/core/log"
	coretypes "github.com/projecteru2/core/types"
	"github.com/spf13/viper"
)

// Bus kinds.
const (
	BusSystem  = "system"
	BusSession = "session"
)

// EnvPrefix is the prefix of environment overrides, e.g. VCMMD_BUS.
const EnvPrefix = "VCMMD"

// Config holds the client library configuration.
type Config struct {
	// Bus selects the message bus the daemon listens on: "system" or
	// "session". Ignored when Address is set.
	Bus string `json:"bus" mapstructure:"bus"`
	// Address is an explicit D-Bus address, e.g.
	// "unix:path=/run/dbus/system_bus_socket".
	Address string `json:"address" mapstructure:"address"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Bus: BusSystem,
		Log: coretypes.ServerLogConfig{
			Level:      "info",
			MaxSize:    500,
			MaxAge:     28,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from file and VCMMD_* environment
// variables, falling back to defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()

	v := viper.New()
	v.SetDefault("bus", conf.Bus)
	v.SetDefault("address", conf.Address)
	// nested keys need a default to be visible to AutomaticEnv
	v.SetDefault("log.level", conf.Log.Level)
	v.SetDefault("log.usejson", conf.Log.UseJSON)
	v.SetDefault("log.filename", conf.Log.Filename)
	v.SetDefault("log.maxsize", conf.Log.MaxSize)
	v.SetDefault("log.maxage", conf.Log.MaxAge)
	v.SetDefault("log.maxbackups", conf.Log.MaxBackups)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks the bus selection.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config not initialized")
	}
	if c.Address != "" {
		return nil
	}
	switch c.Bus {
	case BusSystem, BusSession:
		return nil
	default:
		return fmt.Errorf("invalid bus %q: want %q or %q", c.Bus, BusSystem, BusSession)
	}
}

// SetupLog configures the process-wide logger from c.Log. Libraries
// embedding this client usually leave logging to the host process.
func (c *Config) SetupLog(ctx context.Context) error {
	return log.SetupLog(ctx, &c.Log, "")
}
