package config

import (
	"github.com/director74/shopag/pkg/config"
)

// Config содержит конфигурацию интеграционного сервиса
type Config struct {
	HTTP     config.HTTPConfig
	RabbitMQ config.RabbitMQConfig
	Services config.ServicesConfig
	LogFile  string
}

func NewConfig() (*Config, error) {
	commonConfig := config.LoadCommonConfig("8000")
	servicesConfig := config.LoadServicesConfig()

	return &Config{
		HTTP:     commonConfig.HTTP,
		RabbitMQ: commonConfig.RabbitMQ,
		Services: *servicesConfig,
		LogFile:  config.GetEnv("LOG_FILE", "order_processing.log"),
	}, nil
}
