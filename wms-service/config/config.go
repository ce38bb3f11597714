package config

import (
	"github.com/joho/godotenv"

	"github.com/director74/shopag/pkg/config"
)

// Config конфигурация мок-сервиса WMS
type Config struct {
	RabbitMQ config.RabbitMQConfig
}

// NewConfig загружает конфигурацию из переменных окружения
func NewConfig() (*Config, error) {
	godotenv.Load()

	return &Config{
		RabbitMQ: config.RabbitMQConfig{
			Host:     config.GetEnv("RABBITMQ_HOST", "localhost"),
			Port:     config.GetEnv("RABBITMQ_PORT", "5672"),
			User:     config.GetEnv("RABBITMQ_USER", "shopag"),
			Password: config.GetEnv("RABBITMQ_PASSWORD", "shopag"),
			VHost:    config.GetEnv("RABBITMQ_VHOST", "/"),
		},
	}, nil
}
