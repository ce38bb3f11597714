package config

import (
	"github.com/joho/godotenv"

	"github.com/director74/shopag/pkg/config"
)

// Config конфигурация мок-сервиса инвентаря
type Config struct {
	GRPCPort string
}

// NewConfig загружает конфигурацию из переменных окружения
func NewConfig() (*Config, error) {
	godotenv.Load()

	return &Config{
		GRPCPort: config.GetEnv("GRPC_PORT", "50051"),
	}, nil
}
