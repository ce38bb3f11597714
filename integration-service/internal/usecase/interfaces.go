package usecase

import (
	"context"
	"math"

	"github.com/director74/shopag/integration-service/internal/entity"
)

// InventoryGateway шлюз к Inventory Service (шаг 1 саги и компенсация)
type InventoryGateway interface {
	ReserveItems(ctx context.Context, orderID string, items []entity.OrderItem) (entity.Reservation, error)
	ReleaseItems(ctx context.Context, orderID string) error
	Close() error
}

// PaymentGateway шлюз к Payment Service (шаг 2 саги)
type PaymentGateway interface {
	CreateCharge(ctx context.Context, orderID, token string, amountCents int64, currency string) (entity.ChargeResult, error)
	Close()
}

// ShipmentGateway шлюз к WMS (шаг 3 саги)
type ShipmentGateway interface {
	SendShipment(orderID string, items []entity.OrderItem) error
	Close() error
}

// Адаптеры создаются на каждую сагу и освобождаются на всех путях выхода
type (
	InventoryGatewayFactory func() (InventoryGateway, error)
	PaymentGatewayFactory   func() PaymentGateway
	ShipmentGatewayFactory  func() (ShipmentGateway, error)
)

// centsGuard компенсирует погрешность представления float64:
// 149.99*100 дает 14998.999..., а усечение обязано вернуть 14999.
const centsGuard = 1e-9

// ToCents переводит сумму в мажорных единицах в целые центы
// усечением к нулю: ToCents(x) = floor(x*100).
func ToCents(amount float64) int64 {
	return int64(math.Floor(amount*100 + centsGuard))
}
