package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// ReservationStatus исход попытки резервирования
type ReservationStatus string

const (
	StatusReserved     ReservationStatus = "RESERVED"
	StatusOutOfStock   ReservationStatus = "OUT_OF_STOCK"
	StatusItemNotFound ReservationStatus = "ITEM_NOT_FOUND"
)

// Item позиция запроса на резервирование
type Item struct {
	SKU      string
	Quantity int32
}

// InventoryUseCase имитирует систему инвентаризации. Реального склада нет:
// сценарий выбирается по маркерам в SKU, чтобы интеграционные прогоны могли
// воспроизводить отказные ветки детерминированно.
type InventoryUseCase struct {
	logger *log.Logger
	now    func() time.Time
}

// NewInventoryUseCase создает новый use case инвентаря
func NewInventoryUseCase(logger *log.Logger) *InventoryUseCase {
	if logger == nil {
		logger = log.New(log.Writer(), "[IS] ", log.LstdFlags)
	}

	return &InventoryUseCase{
		logger: logger,
		now:    time.Now,
	}
}

// ReserveItems резервирует позиции заказа.
// Маркеры сценариев в SKU (проверяются по подстроке, первая сработавшая
// позиция решает исход):
//   - "OUT-OF-STOCK" -> OUT_OF_STOCK
//   - "NOT-FOUND"    -> ITEM_NOT_FOUND
//
// Иначе резерв успешен, ID строится из orderID и unix-времени.
func (u *InventoryUseCase) ReserveItems(orderID string, items []Item) (string, ReservationStatus) {
	u.logger.Printf("Запрос на резервирование для заказа: %s", orderID)

	for _, item := range items {
		if strings.Contains(item.SKU, "OUT-OF-STOCK") {
			u.logger.Printf("[WARN] SKU %s отсутствует на складе.", item.SKU)
			return "", StatusOutOfStock
		}
		if strings.Contains(item.SKU, "NOT-FOUND") {
			u.logger.Printf("[ERROR] SKU %s не найден.", item.SKU)
			return "", StatusItemNotFound
		}
	}

	reservationID := fmt.Sprintf("res-%s-%d", orderID, u.now().Unix())
	u.logger.Printf("Позиции заказа %s зарезервированы. ID: %s", orderID, reservationID)
	return reservationID, StatusReserved
}

// ReleaseItems освобождает резерв заказа (компенсация). Мок всегда успешен.
func (u *InventoryUseCase) ReleaseItems(orderID string) bool {
	u.logger.Printf("[КОМПЕНСАЦИЯ] Резерв заказа %s освобожден.", orderID)
	return true
}
