package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/director74/shopag/integration-service/internal/entity"
	"github.com/director74/shopag/integration-service/internal/usecase/webapi"
)

// SagaState состояние саги обработки заказа.
// Состояния локальны для процесса и нигде не сохраняются: при падении
// процесса незавершенные саги теряются.
type SagaState string

const (
	StateStart        SagaState = "START"
	StateReserving    SagaState = "RESERVING"
	StateReserved     SagaState = "RESERVED"
	StateCharging     SagaState = "CHARGING"
	StateCharged      SagaState = "CHARGED"
	StateShipping     SagaState = "SHIPPING"
	StateDone         SagaState = "DONE"
	StateCancelled    SagaState = "CANCELLED"
	StateCompensating SagaState = "COMPENSATING"
	StateAlertManual  SagaState = "ALERT_MANUAL"
)

// SagaOrchestrator выполняет трехшаговую сагу для одного заказа:
// Reserve -> Charge -> Ship, с компенсацией при сбое после уже
// зафиксированного шага. Единственный компонент, знающий бизнес-порядок.
type SagaOrchestrator struct {
	newInventory InventoryGatewayFactory
	newPayment   PaymentGatewayFactory
	newShipment  ShipmentGatewayFactory
	logger       *log.Logger
}

// NewSagaOrchestrator создает новый оркестратор саги
func NewSagaOrchestrator(
	newInventory InventoryGatewayFactory,
	newPayment PaymentGatewayFactory,
	newShipment ShipmentGatewayFactory,
	logger *log.Logger,
) *SagaOrchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "[Saga] ", log.LstdFlags)
	}

	return &SagaOrchestrator{
		newInventory: newInventory,
		newPayment:   newPayment,
		newShipment:  newShipment,
		logger:       logger,
	}
}

// Run прогоняет заказ через все шаги саги и возвращает терминальное
// состояние. Шаги внутри одной саги строго последовательны; саги разных
// заказов выполняются независимо и не разделяют состояние.
func (s *SagaOrchestrator) Run(ctx context.Context, order entity.Order) SagaState {
	logPrefix := fmt.Sprintf("[Order: %s]", order.OrderID)
	s.logger.Printf("%s Начинаем обработку.", logPrefix)

	state := StateStart

	// --- Шаг 1: Inventory Service (gRPC) ---
	s.logger.Printf("%s Шаг 1: проверяем и резервируем инвентарь (IS)...", logPrefix)

	inventory, err := s.newInventory()
	if err != nil {
		s.logger.Printf("[ERROR] %s Сага прервана: не удалось создать канал к IS: %v", logPrefix, err)
		return StateCancelled
	}
	defer inventory.Close()

	state = StateReserving
	reservation, err := inventory.ReserveItems(ctx, order.OrderID, order.Items)
	if err != nil {
		// Компенсация не нужна: раньше первого шага ничего не фиксировалось
		s.logger.Printf("[ERROR] %s Сага прервана: критическая ошибка gRPC с IS: %v", logPrefix, err)
		return StateCancelled
	}

	switch reservation.Status {
	case entity.ReservationReserved:
		// продолжаем
	case entity.ReservationOutOfStock:
		s.logger.Printf("[WARN] %s Отменено: товар не на складе (OUT_OF_STOCK).", logPrefix)
		return StateCancelled
	case entity.ReservationItemNotFound:
		s.logger.Printf("[ERROR] %s Отменено: SKU не найден (ITEM_NOT_FOUND).", logPrefix)
		return StateCancelled
	default:
		s.logger.Printf("[ERROR] %s Отменено: неизвестная ошибка инвентаря (статус: %s).", logPrefix, reservation.Status)
		return StateCancelled
	}

	state = StateReserved
	s.logger.Printf("%s Инвентарь зарезервирован. (ID: %s)", logPrefix, reservation.ReservationID)

	// --- Шаг 2: Payment Service (REST) ---
	s.logger.Printf("%s Шаг 2: проводим платеж (PS)...", logPrefix)

	payment := s.newPayment()
	defer payment.Close()

	state = StateCharging
	amountCents := ToCents(order.TotalAmount)

	charge, err := payment.CreateCharge(ctx, order.OrderID, order.PaymentToken, amountCents, order.Currency)
	if err != nil {
		s.logPaymentFailure(logPrefix, err)
		return s.compensate(ctx, inventory, order.OrderID, logPrefix)
	}

	state = StateCharged
	s.logger.Printf("%s Платеж выполнен. (TxID: %s)", logPrefix, charge.TransactionID)

	// --- Шаг 3: Warehouse Management System (MQ) ---
	s.logger.Printf("%s Шаг 3: отправляем заказ в WMS (MQ)...", logPrefix)

	shipment, err := s.newShipment()
	if err != nil {
		// Платеж уже проведен, но WMS не уведомлен. Автоматический возврат
		// средств не выполняется: заказ нужно завести в WMS вручную.
		s.logger.Printf("[ERROR] %s КРИТИЧНО: сага прервана, ошибка MQ с WMS: %v. ТРЕБУЕТСЯ РУЧНОЕ ВМЕШАТЕЛЬСТВО!", logPrefix, err)
		return StateAlertManual
	}
	defer shipment.Close()

	state = StateShipping
	if err := shipment.SendShipment(order.OrderID, order.Items); err != nil {
		s.logger.Printf("[ERROR] %s КРИТИЧНО: публикация в WMS не удалась: %v. ТРЕБУЕТСЯ РУЧНОЕ ВМЕШАТЕЛЬСТВО!", logPrefix, err)
		return StateAlertManual
	}

	state = StateDone
	s.logger.Printf("%s Обработка успешно завершена (%s). Ожидаем обновления статусов от WMS.", logPrefix, state)
	return StateDone
}

// compensate освобождает резерв после сбоя платежа.
// Вызывается ровно один раз на сагу; при отказе компенсации сага
// завершается в ALERT_MANUAL с логом максимальной серьезности.
func (s *SagaOrchestrator) compensate(ctx context.Context, inventory InventoryGateway, orderID, logPrefix string) SagaState {
	s.logger.Printf("%s Запускаем компенсацию (%s).", logPrefix, StateCompensating)

	if err := inventory.ReleaseItems(ctx, orderID); err != nil {
		s.logger.Printf("[ERROR] %s КРИТИЧНО: компенсация не выполнена: %v. ТРЕБУЕТСЯ РУЧНОЕ ВМЕШАТЕЛЬСТВО!", logPrefix, err)
		return StateAlertManual
	}

	s.logger.Printf("%s Компенсация выполнена. Сага остановлена.", logPrefix)
	return StateCompensating
}

// logPaymentFailure различает виды ошибок платежа в логе.
// Любой сбой платежа (включая транспортный, когда статус на стороне PS
// неизвестен) приводит к компенсации; это сознательное упрощение.
func (s *SagaOrchestrator) logPaymentFailure(logPrefix string, err error) {
	var pe *webapi.PaymentError
	if errors.As(err, &pe) {
		switch pe.Kind {
		case webapi.PaymentDeclined:
			s.logger.Printf("[WARN] %s Платеж отклонен (HTTP %d). Запускаем компенсацию.", logPrefix, pe.StatusCode)
			return
		case webapi.PaymentTransportError:
			s.logger.Printf("[ERROR] %s Payment Service недоступен (%v). Статус платежа неизвестен. Запускаем компенсацию.", logPrefix, pe.Err)
			return
		default:
			s.logger.Printf("[ERROR] %s Платеж не прошел (%v). Запускаем компенсацию.", logPrefix, err)
			return
		}
	}
	s.logger.Printf("[ERROR] %s Платеж не прошел: %v. Запускаем компенсацию.", logPrefix, err)
}
