package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Assets AssetsConfig `mapstructure:"assets"`
}

type APIConfig struct {
	Key           string          `mapstructure:"key"`
	BaseURL       string          `mapstructure:"base_url"`
	Timeout       time.Duration   `mapstructure:"timeout"`
	ProbeLocation string          `mapstructure:"probe_location"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type AssetsConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from an optional YAML file and the environment
// (prefix WEATHER, dots become underscores, so api.key is WEATHER_API_KEY).
// Every knob has a default; only the API key has no usable one.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WEATHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("api.key", "")
	v.SetDefault("api.base_url", "http://api.weatherapi.com/v1")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.probe_location", "London")
	v.SetDefault("api.rate_limit.rps", 1.0)
	v.SetDefault("api.rate_limit.burst", 3)
	v.SetDefault("assets.dir", "assets")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
