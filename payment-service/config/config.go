package config

import (
	"github.com/director74/shopag/pkg/config"
)

// Config конфигурация мок-сервиса платежей
type Config struct {
	HTTP config.HTTPConfig
}

// NewConfig загружает конфигурацию из переменных окружения
func NewConfig() (*Config, error) {
	common := config.LoadCommonConfig("8001")

	return &Config{
		HTTP: common.HTTP,
	}, nil
}
