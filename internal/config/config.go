package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"challenge-service/internal/logger"
	"challenge-service/internal/repository/postgres"
	"challenge-service/internal/server"
)

type Config struct {
	HTTP     server.Config
	Postgres postgres.Config
	Logger   logger.Config
}

func New(path string) (*Config, error) {
	var cfg Config

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}
