package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type NovaPoolConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Workdir string `mapstructure:"workdir"`
		File    string `mapstructure:"file"`
	} `mapstructure:"storage"`

	BufferPool struct {
		Capacity int `mapstructure:"capacity"`
	} `mapstructure:"bufferpool"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novapool")
	v.SetDefault("storage.workdir", "./data")
	v.SetDefault("storage.file", "pages")
	v.SetDefault("bufferpool.capacity", 128)
	v.SetDefault("log.level", "info")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("NOVAPOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads a YAML config file. NOVAPOOL_* environment variables
// override file values (e.g. NOVAPOOL_BUFFERPOOL_CAPACITY).
func LoadConfig(path string) (*NovaPoolConfig, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

// DefaultConfig returns the defaults with environment overrides applied.
func DefaultConfig() (*NovaPoolConfig, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*NovaPoolConfig, error) {
	var cfg NovaPoolConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *NovaPoolConfig) Validate() error {
	if c.BufferPool.Capacity < 0 {
		return fmt.Errorf("config: bufferpool.capacity must be >= 0, got %d", c.BufferPool.Capacity)
	}
	if c.Storage.File == "" {
		return fmt.Errorf("config: storage.file must not be empty")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel maps log.level to a slog.Level.
func (c *NovaPoolConfig) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}
