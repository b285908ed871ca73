package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Service   Service   `yaml:"service"`
	Telemetry Telemetry `yaml:"telemetry"`
	Events    Events    `yaml:"events"`
}

type Service struct {
	Name    string `yaml:"name" env:"SERVICE_NAME" env-default:"tic-tac-toe"`
	Version string `yaml:"version" env:"SERVICE_VERSION" env-default:"v0.1.0"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	Endpoint     string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"otel-collector:4317"`
	StdoutTraces bool   `yaml:"stdout-traces" env:"OTEL_STDOUT_TRACES" env-default:"false"`
}

type Events struct {
	// DisableLog stops session events from being written to the logger.
	DisableLog bool `yaml:"disable-log" env:"EVENTS_DISABLE_LOG"`
	// History is how many events are kept for `play --events`.
	History int `yaml:"history" env:"EVENTS_HISTORY" env-default:"100"`
}

// Load reads the config file at path, or only the environment when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	return config, nil
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
