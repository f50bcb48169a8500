package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/senceapptr/SenceApp-sub004/internal/trivia"
)

// Catalog sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Catalog struct {
		Source string `yaml:"source"`
		Path   string `yaml:"path"`
		TTL    string `yaml:"ttl"`
	} `yaml:"catalog"`
	Trivia struct {
		RoundSize        int    `yaml:"round_size"`
		RoundSeconds     int    `yaml:"round_seconds"`
		CountdownSeconds int    `yaml:"countdown_seconds"`
		Tick             string `yaml:"tick"`
		RevealDelay      string `yaml:"reveal_delay"`
		Seed             int64  `yaml:"seed"`
	} `yaml:"trivia"`
}

// Load reads YAML config from path. A missing file yields the zero config so the
// server can start on defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// CatalogSource returns the configured catalog source, defaulting to the embedded set.
func (c Config) CatalogSource() string {
	if c.Catalog.Source == "" {
		return SourceEmbedded
	}
	return c.Catalog.Source
}

// TriviaSettings maps the trivia section onto engine settings. Unset values keep
// the engine defaults.
func (c Config) TriviaSettings() trivia.Settings {
	def := trivia.DefaultSettings()
	s := def
	if c.Trivia.RoundSize > 0 {
		s.RoundSize = c.Trivia.RoundSize
	}
	if c.Trivia.RoundSeconds > 0 {
		s.RoundSeconds = c.Trivia.RoundSeconds
	}
	if c.Trivia.CountdownSeconds > 0 {
		s.CountdownSeconds = c.Trivia.CountdownSeconds
	}
	s.Tick = TTLDuration(c.Trivia.Tick, def.Tick)
	s.RevealDelay = TTLDuration(c.Trivia.RevealDelay, def.RevealDelay)
	return s
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
