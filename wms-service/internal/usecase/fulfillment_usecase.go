package usecase

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/director74/shopag/pkg/messaging"
	"github.com/director74/shopag/wms-service/internal/entity"
)

// Очередь исходящих статус-обновлений
const StatusQueue = "wms.status.updates"

// Номер отслеживания, который мок выдает каждому отправленному заказу
const trackingNumber = "TRK12345ABC"

// Формат меток времени в статус-обновлениях: UTC ISO-8601 с суффиксом Z
const updateTimeLayout = "2006-01-02T15:04:05Z"

// FulfillmentUseCase имитирует складской цикл: pick -> pack -> ship.
// Каждая инструкция обрабатывается в своей горутине, статусы публикуются
// по мере прохождения этапов с задержками, имитирующими реальный склад.
type FulfillmentUseCase struct {
	publisher messaging.MessagePublisher
	logger    *log.Logger

	// Задержки этапов; в тестах обнуляются
	pickDelay time.Duration
	packDelay time.Duration
	shipDelay time.Duration

	now func() time.Time
}

// NewFulfillmentUseCase создает новый use case складского цикла
func NewFulfillmentUseCase(publisher messaging.MessagePublisher, logger *log.Logger) *FulfillmentUseCase {
	if logger == nil {
		logger = log.New(log.Writer(), "[WMS] ", log.LstdFlags)
	}

	return &FulfillmentUseCase{
		publisher: publisher,
		logger:    logger,
		pickDelay: 3 * time.Second,
		packDelay: 3 * time.Second,
		shipDelay: 2 * time.Second,
		now:       time.Now,
	}
}

// HandleInstruction разбирает входящую инструкцию и запускает обработку
// в фоне, чтобы не блокировать потребителя очереди. Ошибка возвращается
// только для сообщений, которые невозможно разобрать.
func (u *FulfillmentUseCase) HandleInstruction(body []byte) error {
	var instruction entity.ShipmentInstruction
	if err := json.Unmarshal(body, &instruction); err != nil {
		u.logger.Printf("[ERROR] Ошибка при обработке сообщения: %v", err)
		return fmt.Errorf("некорректная инструкция на отгрузку: %w", err)
	}

	u.logger.Printf("Новая инструкция на отгрузку для заказа %s получена.", instruction.OrderID)

	go u.processOrder(instruction.OrderID)
	return nil
}

// processOrder прогоняет заказ через этапы склада, публикуя статус
// после каждого этапа. Последний статус несет номер отслеживания.
func (u *FulfillmentUseCase) processOrder(orderID string) {
	u.logger.Printf("Начинаем обработку заказа %s", orderID)

	time.Sleep(u.pickDelay)
	u.publishStatus(orderID, "ITEMS_PICKED", "")

	time.Sleep(u.packDelay)
	u.publishStatus(orderID, "ORDER_PACKED", "")

	time.Sleep(u.shipDelay)
	u.publishStatus(orderID, "ORDER_SHIPPED", trackingNumber)
}

func (u *FulfillmentUseCase) publishStatus(orderID, status, tracking string) {
	update := entity.StatusUpdate{
		OrderID:         orderID,
		Status:          status,
		UpdateTimestamp: u.now().UTC().Format(updateTimeLayout),
		TrackingNumber:  tracking,
	}

	if err := u.publisher.PublishMessageWithRetry("", StatusQueue, update, 2); err != nil {
		u.logger.Printf("[ERROR] Ошибка отправки статуса %s для заказа %s: %v", status, orderID, err)
		return
	}

	u.logger.Printf("Статус отправлен: %s для заказа %s", status, orderID)
}
