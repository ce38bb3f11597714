package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/director74/shopag/integration-service/internal/entity"
	"github.com/director74/shopag/pkg/errors"
)

// OrderUseCase принимает заказы от OMS и запускает саги в фоне
type OrderUseCase struct {
	saga   *SagaOrchestrator
	logger *log.Logger
}

// NewOrderUseCase создает новый use case приема заказов
func NewOrderUseCase(saga *SagaOrchestrator, logger *log.Logger) *OrderUseCase {
	if logger == nil {
		logger = log.New(log.Writer(), "[Intake] ", log.LstdFlags)
	}

	return &OrderUseCase{
		saga:   saga,
		logger: logger,
	}
}

// SubmitOrder валидирует заказ и планирует сагу на фоновое выполнение.
// Ответ возвращается сразу (семантика 202): вызывающий не узнает об итоге
// обработки, все дальнейшие исходы наблюдаемы только по логам и статусам WMS.
func (u *OrderUseCase) SubmitOrder(ctx context.Context, order entity.Order) (entity.SubmitOrderResponse, error) {
	if err := order.Validate(); err != nil {
		return entity.SubmitOrderResponse{}, errors.NewBadRequestError(err.Error())
	}

	logPrefix := fmt.Sprintf("[Order: %s]", order.OrderID)
	u.logger.Printf("%s Новый заказ получен от OMS API.", logPrefix)

	processingID := fmt.Sprintf("proc-%s", order.OrderID)

	// Фоновая задача: прием не блокируется на завершении саги.
	// Контекст запроса не передается, иначе отмена HTTP-запроса
	// оборвала бы уже запущенную сагу.
	go u.saga.Run(context.Background(), order)

	u.logger.Printf("%s Принят в фоновую обработку (ID: %s).", logPrefix, processingID)

	return entity.SubmitOrderResponse{
		ProcessingID: processingID,
		OrderID:      order.OrderID,
		Status:       "Processing accepted",
	}, nil
}
