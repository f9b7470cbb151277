package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"taskClient/internal/apiclient"

	"github.com/spf13/viper"
)

const (
	EnvAPIURL         = "API_URL"
	EnvLogDevelopment = "LOG_DEVELOPMENT"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load reads the optional YAML file at path, then applies environment
// overrides. A missing file is not an error; a broken one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("api.base_url", apiclient.DefaultBaseURL)
	v.SetDefault("logging.development", false)

	if err := v.BindEnv("api.base_url", EnvAPIURL); err != nil {
		return nil, fmt.Errorf("bind %s: %w", EnvAPIURL, err)
	}
	if err := v.BindEnv("logging.development", EnvLogDevelopment); err != nil {
		return nil, fmt.Errorf("bind %s: %w", EnvLogDevelopment, err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimSpace(cfg.API.BaseURL)
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = apiclient.DefaultBaseURL
	}
	if _, err := apiclient.ParseBaseURL(cfg.API.BaseURL); err != nil {
		return nil, fmt.Errorf("config api.base_url: %w", err)
	}

	return &cfg, nil
}
