package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Config содержит настройки подключения к RabbitMQ
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	VHost     string
	Heartbeat time.Duration
}

// RabbitMQ представляет клиент для работы с RabbitMQ
type RabbitMQ struct {
	config     Config
	mu         sync.Mutex // брокер не допускает конкурентные публикации в один канал
	connection *amqp.Connection
	channel    *amqp.Channel
}

func NewRabbitMQ(cfg Config) (*RabbitMQ, error) {
	if cfg.Heartbeat == 0 {
		cfg.Heartbeat = 60 * time.Second
	}

	rmq := &RabbitMQ{
		config: cfg,
	}

	err := rmq.connect()
	if err != nil {
		return nil, err
	}

	return rmq, nil
}

// connect устанавливает соединение с RabbitMQ
func (r *RabbitMQ) connect() error {
	connStr := fmt.Sprintf("amqp://%s:%s@%s:%s/%s",
		r.config.User, r.config.Password, r.config.Host, r.config.Port, r.config.VHost)

	conn, err := amqp.DialConfig(connStr, amqp.Config{
		Heartbeat: r.config.Heartbeat,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	r.connection = conn

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	r.channel = ch

	return nil
}

// reconnect пытается восстановить соединение с RabbitMQ, если оно закрыто
func (r *RabbitMQ) reconnect() error {
	if r.connection != nil && !r.connection.IsClosed() {
		return nil
	}

	log.Println("Попытка переподключения к RabbitMQ...")
	return r.connect()
}

// Close закрывает соединение с RabbitMQ
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.channel != nil && !r.channel.IsClosed() {
		if err = r.channel.Close(); err != nil {
			return fmt.Errorf("ошибка при закрытии канала: %w", err)
		}
	}
	if r.connection != nil && !r.connection.IsClosed() {
		if err = r.connection.Close(); err != nil {
			return fmt.Errorf("ошибка при закрытии соединения: %w", err)
		}
	}
	return nil
}

// DeclareQueue объявляет очередь (идемпотентно)
func (r *RabbitMQ) DeclareQueue(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.reconnect(); err != nil {
		return fmt.Errorf("ошибка переподключения перед объявлением очереди: %w", err)
	}

	_, err := r.channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	return err
}

// PublishMessage публикует сообщение в RabbitMQ.
// Сообщение сериализуется в JSON и помечается как persistent (delivery_mode=2),
// чтобы пережить перезапуск брокера.
func (r *RabbitMQ) PublishMessage(exchange, routingKey string, message interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.reconnect(); err != nil {
		return fmt.Errorf("ошибка переподключения перед публикацией сообщения: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return r.channel.PublishWithContext(
		ctx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// PublishMessageWithRetry публикует сообщение с повторными попытками
func (r *RabbitMQ) PublishMessageWithRetry(exchange, routingKey string, message interface{}, retries int) error {
	var err error
	for i := 0; i <= retries; i++ {
		if err = r.PublishMessage(exchange, routingKey, message); err == nil {
			return nil
		}

		log.Printf("Ошибка публикации сообщения (попытка %d/%d): %v", i+1, retries+1, err)

		if i < retries {
			backoff := time.Duration(i+1) * time.Second
			log.Printf("Повторная попытка через %v...", backoff)
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("не удалось опубликовать сообщение после %d попыток: %w", retries+1, err)
}

// Consume возвращает канал доставок без собственного цикла обработки.
// Подтверждения (ack/nack) остаются на вызывающей стороне.
func (r *RabbitMQ) Consume(queueName, consumerName string) (<-chan amqp.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.reconnect(); err != nil {
		return nil, fmt.Errorf("ошибка переподключения перед обработкой сообщений: %w", err)
	}

	// Добавляем уникальный идентификатор к имени консьюмера, если он ещё не содержит временную метку
	if !containsTimestamp(consumerName) {
		consumerName = fmt.Sprintf("%s-%d", consumerName, time.Now().UnixNano())
	}

	msgs, err := r.channel.Consume(
		queueName,    // queue
		consumerName, // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при начале обработки сообщений: %w", err)
	}

	return msgs, nil
}

// containsTimestamp проверяет, содержит ли строка числовой суффикс, похожий на временную метку
func containsTimestamp(s string) bool {
	// Строка должна заканчиваться на минимум 10 цифр подряд (длина Unix timestamp)
	var consecutiveDigits int
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] >= '0' && s[i] <= '9' {
			consecutiveDigits++
			if consecutiveDigits >= 10 {
				return true
			}
		} else {
			consecutiveDigits = 0
		}
	}
	return false
}
