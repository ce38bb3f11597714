package messaging

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/director74/shopag/pkg/config"
	"github.com/director74/shopag/pkg/rabbitmq"
)

// MessagePublisher интерфейс для публикации сообщений
type MessagePublisher interface {
	PublishMessage(exchange, routingKey string, message interface{}) error
	PublishMessageWithRetry(exchange, routingKey string, message interface{}, retries int) error
}

// MessageConsumer интерфейс для получения сообщений
type MessageConsumer interface {
	DeclareQueue(name string) error
	Consume(queueName, consumerName string) (<-chan amqp.Delivery, error)
}

// MessageBroker объединяет функциональность публикации и обработки сообщений
type MessageBroker interface {
	MessagePublisher
	MessageConsumer
	Close() error
}

// InitRabbitMQ инициализирует подключение к RabbitMQ с общими параметрами
func InitRabbitMQ(cfg config.RabbitMQConfig) (*rabbitmq.RabbitMQ, error) {
	rmqCfg := rabbitmq.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		VHost:    cfg.VHost,
	}

	rmq, err := rabbitmq.NewRabbitMQ(rmqCfg)
	if err != nil {
		return nil, err
	}

	return rmq, nil
}

// SetupQueues объявляет очереди, необходимые сервису
func SetupQueues(broker MessageConsumer, queues ...string) error {
	for _, queueName := range queues {
		if err := broker.DeclareQueue(queueName); err != nil {
			return err
		}
	}
	return nil
}
