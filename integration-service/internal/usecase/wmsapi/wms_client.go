package wmsapi

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/director74/shopag/integration-service/internal/entity"
	"github.com/director74/shopag/pkg/config"
	"github.com/director74/shopag/pkg/messaging"
	"github.com/director74/shopag/pkg/rabbitmq"
)

// Очередь новых инструкций на отгрузку
const ShipmentQueue = "wms.orders.new"

// Формат меток времени в инструкциях: UTC ISO-8601 с суффиксом Z
const instructionTimeLayout = "2006-01-02T15:04:05Z"

// WMSClient публикует инструкции на отгрузку в очередь WMS.
// Клиент владеет соединением с брокером; если соединение закрыто к моменту
// публикации, оно восстанавливается по требованию (внутри pkg/rabbitmq).
type WMSClient struct {
	broker messaging.MessageBroker
	logger *log.Logger
}

// NewWMSClient подключается к брокеру и объявляет очередь отгрузок
func NewWMSClient(cfg config.RabbitMQConfig) (*WMSClient, error) {
	rmq, err := rabbitmq.NewRabbitMQ(rabbitmq.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		VHost:    cfg.VHost,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к RabbitMQ (WMS): %w", err)
	}

	client := newWMSClientWithBroker(rmq)

	if err := rmq.DeclareQueue(ShipmentQueue); err != nil {
		rmq.Close()
		return nil, fmt.Errorf("не удалось объявить очередь %s: %w", ShipmentQueue, err)
	}

	client.logger.Printf("WMS клиент подключен к RabbitMQ.")
	return client, nil
}

func newWMSClientWithBroker(broker messaging.MessageBroker) *WMSClient {
	return &WMSClient{
		broker: broker,
		logger: log.New(log.Writer(), "[WMSClient] ", log.LstdFlags),
	}
}

// SendShipment публикует инструкцию на отгрузку заказа.
// instructionId генерируется заново на каждую публикацию; порядок позиций
// сохраняется как в исходном заказе. Сообщение публикуется persistent.
func (c *WMSClient) SendShipment(orderID string, items []entity.OrderItem) error {
	instruction := entity.ShipmentInstruction{
		InstructionID:        uuid.NewString(),
		OrderID:              orderID,
		InstructionTimestamp: time.Now().UTC().Format(instructionTimeLayout),
		Items:                items,
		// Источник адреса доставки контрактом не определен, используется заглушка
		ShippingAddress: entity.ShippingAddress{
			Name:   "Max Mustermann",
			Street: "Testweg 1",
		},
	}

	if err := c.broker.PublishMessage("", ShipmentQueue, instruction); err != nil {
		c.logger.Printf("[ERROR] [Order: %s] ОШИБКА отправки в очередь WMS: %v", orderID, err)
		return fmt.Errorf("ошибка публикации инструкции на отгрузку: %w", err)
	}

	c.logger.Printf("[Order: %s] Инструкция на отгрузку отправлена в очередь WMS.", orderID)
	return nil
}

// Close закрывает соединение с брокером
func (c *WMSClient) Close() error {
	return c.broker.Close()
}
