package config

import (
	"errors"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required when DB_DRIVER is postgres")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Sources  SourcesConfig
}

type AppConfig struct {
	Port     string `env:"PORT" env-default:"3000"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite"`
	Path   string `env:"DB_PATH" env-default:"database/jokes.db"`
	URL    string `env:"DATABASE_URL"`
}

type SourcesConfig struct {
	ChuckURL  string        `env:"CHUCK_API_URL" env-default:"https://api.chucknorris.io/jokes/random"`
	DadURL    string        `env:"DAD_API_URL" env-default:"https://icanhazdadjoke.com/"`
	Timeout   time.Duration `env:"SOURCE_TIMEOUT" env-default:"10s"`
	UserAgent string        `env:"SOURCE_USER_AGENT" env-default:"SquadMakers Jokes API"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Driver == DriverPostgres && cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}

	return &cfg, nil
}
