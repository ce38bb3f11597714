package rabbitmq

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/director74/shopag/pkg/config"
	"github.com/director74/shopag/pkg/rabbitmq"
	"github.com/director74/shopag/wms-service/internal/usecase"
)

// Очередь входящих инструкций на отгрузку
const InstructionQueue = "wms.orders.new"

// Пауза перед переподключением после потери соединения
const reconnectDelay = 5 * time.Second

// InstructionConsumer слушает очередь инструкций на отгрузку и передает
// их складскому циклу. Живет все время работы процесса.
type InstructionConsumer struct {
	config      config.RabbitMQConfig
	fulfillment *usecase.FulfillmentUseCase
	logger      *log.Logger
}

func NewInstructionConsumer(cfg config.RabbitMQConfig, fulfillment *usecase.FulfillmentUseCase) *InstructionConsumer {
	return &InstructionConsumer{
		config:      cfg,
		fulfillment: fulfillment,
		logger:      log.New(log.Writer(), "[WMS] ", log.LstdFlags),
	}
}

// Run блокирует до отмены контекста. При любой ошибке брокера цикл
// засыпает на 5 секунд и подключается заново.
func (c *InstructionConsumer) Run(ctx context.Context) {
	c.logger.Printf("Mock WMS Service (MQ) запускается...")

	for {
		err := c.consumeLoop(ctx)
		if ctx.Err() != nil {
			c.logger.Printf("Слушатель инструкций остановлен.")
			return
		}
		c.logger.Printf("[WARN] Соединение с RabbitMQ потеряно: %v. Переподключение через %v...", err, reconnectDelay)

		select {
		case <-ctx.Done():
			c.logger.Printf("Слушатель инструкций остановлен.")
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// consumeLoop держит одно соединение: объявляет очередь и обрабатывает
// инструкции до закрытия канала или отмены контекста. Неразбираемые
// сообщения отклоняются без возврата в очередь.
func (c *InstructionConsumer) consumeLoop(ctx context.Context) error {
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

	if err := rmq.DeclareQueue(InstructionQueue); err != nil {
		return err
	}

	msgs, err := rmq.Consume(InstructionQueue, "wms_instruction_consumer")
	if err != nil {
		return err
	}

	c.logger.Printf("Ожидаем новые инструкции. (Consumer активен)")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("канал доставок закрыт брокером")
			}
			if err := c.fulfillment.HandleInstruction(msg.Body); err != nil {
				msg.Nack(false, false) // без requeue: сообщение уходит в DLQ
			} else {
				msg.Ack(false)
			}
		}
	}
}
