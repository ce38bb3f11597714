package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// CommonConfig содержит общую конфигурацию, используемую во всех сервисах
type CommonConfig struct {
	HTTP     HTTPConfig
	RabbitMQ RabbitMQConfig
}

// HTTPConfig содержит настройки HTTP сервера
type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RabbitMQConfig содержит настройки RabbitMQ
type RabbitMQConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	VHost    string
}

// ServicesConfig содержит адреса внешних систем интеграции
type ServicesConfig struct {
	InventoryURL string
	PaymentURL   string
}

// LoadCommonConfig загружает общую конфигурацию из переменных окружения
func LoadCommonConfig(port string) *CommonConfig {
	// Загружаем переменные окружения из .env файла, если он существует
	godotenv.Load()

	return &CommonConfig{
		HTTP: HTTPConfig{
			Port:         GetEnv("HTTP_PORT", port),
			ReadTimeout:  GetEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: GetEnvAsDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     GetEnv("RABBITMQ_HOST", "localhost"),
			Port:     GetEnv("RABBITMQ_PORT", "5672"),
			User:     GetEnv("RABBITMQ_USER", "shopag"),
			Password: GetEnv("RABBITMQ_PASSWORD", "shopag"),
			VHost:    GetEnv("RABBITMQ_VHOST", "/"),
		},
	}
}

// LoadServicesConfig загружает адреса внешних сервисов из переменных окружения
func LoadServicesConfig() *ServicesConfig {
	return &ServicesConfig{
		InventoryURL: GetEnv("INVENTORY_SERVICE_URL", "inventory_service:50051"),
		PaymentURL:   GetEnv("PAYMENT_SERVICE_URL", "http://payment_service:8001"),
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
