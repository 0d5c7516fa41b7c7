package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	DatabaseDSN       string        `env:"DATABASE_DSN" envDefault:"ubloom.db"`
	ReflectionURL     string        `env:"REFLECTION_SERVICE_URL" envDefault:"http://127.0.0.1:5000/api/reflect"`
	ReflectionTimeout time.Duration `env:"REFLECTION_TIMEOUT" envDefault:"30s"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	DayPollInterval   time.Duration `env:"DAY_POLL_INTERVAL" envDefault:"1m"`
	AutosaveInterval  time.Duration `env:"AUTOSAVE_INTERVAL" envDefault:"30s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
