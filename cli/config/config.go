package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mwantia/kvfs/log"
	"github.com/mwantia/kvfs/mounts"
	"github.com/mwantia/kvfs/system"
)

// EnvPath overrides the configuration file location.
const EnvPath = "KVFS_CONFIG"

const DefaultPath = "configs/config.yaml"

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
	Colors  ColorConfig   `yaml:"colors"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"KVFS_LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file" env:"KVFS_LOG_FILE" env-default:"kvfs.log"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"KVFS_STORAGE_DRIVER" env-default:"memory"`
}

type MetricsConfig struct {
	// Address of the /metrics endpoint, empty disables it.
	Address string `yaml:"address" env:"KVFS_METRICS_ADDRESS"`
}

type ColorConfig struct {
	Foreground string `yaml:"foreground" env:"KVFS_FOREGROUND" env-default:"Black"`
	Background string `yaml:"background" env:"KVFS_BACKGROUND" env-default:"Yellow"`
}

// Path returns the configuration file location from the environment or the default.
func Path() string {
	if path := os.Getenv(EnvPath); path != "" {
		return path
	}
	return DefaultPath
}

// Load reads path and enriches it with environment variables.
// A missing file falls back to environment variables and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config '%s': %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func (c *Config) Validate() error {
	if _, err := log.Parse(c.Log.Level); err != nil {
		return err
	}
	if _, err := mounts.StorageFactory(c.Storage.Driver); err != nil {
		return err
	}
	for _, color := range []string{c.Colors.Foreground, c.Colors.Background} {
		if !system.IsVGAColor(color) {
			return fmt.Errorf("unknown color '%s', expected one of %v", color, system.VGAColors)
		}
	}
	return nil
}

// LogLevel returns the parsed level, Validate has already accepted it.
func (c *Config) LogLevel() log.LogLevel {
	level, _ := log.Parse(c.Log.Level)
	return level
}
