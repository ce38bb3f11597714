package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/director74/shopag/pkg/config"
	"github.com/director74/shopag/pkg/rabbitmq"
)

// Очередь входящих статусов от WMS
const StatusQueue = "wms.status.updates"

// Пауза перед переподключением после потери соединения
const reconnectDelay = 10 * time.Second

// StatusConsumer фоновый слушатель статус-обновлений от WMS.
// Живет все время работы процесса, не разделяет состояние с сагами
// и останавливается только при завершении процесса.
type StatusConsumer struct {
	config config.RabbitMQConfig
	logger *log.Logger
}

func NewStatusConsumer(cfg config.RabbitMQConfig) *StatusConsumer {
	return &StatusConsumer{
		config: cfg,
		logger: log.New(log.Writer(), "[WMS-STATUS] ", log.LstdFlags),
	}
}

// Run блокирует до отмены контекста. При любой ошибке брокера цикл
// засыпает на 10 секунд и подключается заново; сам по себе он не завершается.
func (c *StatusConsumer) Run(ctx context.Context) {
	c.logger.Printf("Слушатель статусов WMS запускается...")

	for {
		err := c.consumeLoop(ctx)
		if ctx.Err() != nil {
			c.logger.Printf("Слушатель статусов WMS остановлен.")
			return
		}
		c.logger.Printf("[WARN] Соединение с RabbitMQ потеряно: %v. Переподключение через %v...", err, reconnectDelay)

		select {
		case <-ctx.Done():
			c.logger.Printf("Слушатель статусов WMS остановлен.")
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// consumeLoop держит одно соединение: объявляет очередь и обрабатывает
// доставки до закрытия канала или отмены контекста
func (c *StatusConsumer) consumeLoop(ctx context.Context) error {
	rmq, err := rabbitmq.NewRabbitMQ(rabbitmq.Config{
		Host:     c.config.Host,
		Port:     c.config.Port,
		User:     c.config.User,
		Password: c.config.Password,
		VHost:    c.config.VHost,
	})
	if err != nil {
		return err
	}
	defer rmq.Close()

	if err := rmq.DeclareQueue(StatusQueue); err != nil {
		return err
	}

	msgs, err := rmq.Consume(StatusQueue, "wms_status_consumer")
	if err != nil {
		return err
	}

	c.logger.Printf("Слушатель активен и ожидает обновления.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("канал доставок закрыт брокером")
			}
			c.handleDelivery(msg)
		}
	}
}

// handleDelivery разбирает одно сообщение. Валидный JSON логируется и
// подтверждается; все остальное отклоняется без возврата в очередь
// (уходит в DLQ, если брокер так настроен). Других исходов нет.
func (c *StatusConsumer) handleDelivery(msg amqp.Delivery) {
	var data map[string]interface{}
	if err := json.Unmarshal(msg.Body, &data); err != nil {
		c.logger.Printf("[ERROR] Получено сообщение с некорректным JSON: %s", msg.Body)
		msg.Nack(false, false)
		return
	}

	orderID := stringField(data, "orderId")
	status := stringField(data, "status")

	// Все обновления WMS логируются централизованно
	c.logger.Printf("[Order: %s] Статус-обновление: %s. Детали: %v", orderID, status, data)
	msg.Ack(false)
}

// stringField достает строковое поле, подставляя UNKNOWN при отсутствии
func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return "UNKNOWN"
}
