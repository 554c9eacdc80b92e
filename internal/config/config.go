package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TimerSeconds  int    `yaml:"timer_seconds"`
		RevealDelay   string `yaml:"reveal_delay"`
		DefaultAmount int    `yaml:"default_amount"`
	} `yaml:"quiz"`
	OpenTDB struct {
		BaseURL     string `yaml:"base_url"`
		Timeout     string `yaml:"timeout"`
		CategoryTTL string `yaml:"category_ttl"`
	} `yaml:"opentdb"`
}

// Load reads YAML config from path. A missing file yields the zero config so
// the service can run entirely on defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DurationOr parses a duration string or returns the fallback if empty or
// malformed.
func DurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
