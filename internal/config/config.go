package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log-format" env:"TTT_LOG_FORMAT" env-default:"json"`
	HTTP      HTTP   `yaml:"http"`
}

type HTTP struct {
	Addr            string        `yaml:"addr" env:"TTT_HTTP_ADDR" env-default:":8080"`
	Heartbeat       time.Duration `yaml:"heartbeat" env:"TTT_HEARTBEAT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"TTT_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads the YAML file at path, then applies environment overrides.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}
	return cfg
}
