package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/director74/shopag/payment-service/internal/entity"
)

// ChargeOutcome исход обработки платежа
type ChargeOutcome string

const (
	OutcomeSucceeded ChargeOutcome = "succeeded"
	OutcomeDeclined  ChargeOutcome = "declined"
	OutcomeTimeout   ChargeOutcome = "timeout"
)

// Формат метки времени транзакции: UTC ISO-8601 с суффиксом Z
const createdAtLayout = "2006-01-02T15:04:05Z"

// PaymentUseCase имитирует платежный процессинг. Исход выбирается по
// префиксу платежного токена:
//   - "tok_decline_" -> отказ (HTTP 402 на уровне контроллера)
//   - "tok_timeout_" -> задержка дольше клиентского таймаута чтения
//   - иначе          -> успешная транзакция
type PaymentUseCase struct {
	logger *log.Logger

	// Длительность имитации зависания; в тестах укорачивается
	timeoutDelay time.Duration
	now          func() time.Time
}

// NewPaymentUseCase создает новый use case платежей
func NewPaymentUseCase(logger *log.Logger) *PaymentUseCase {
	if logger == nil {
		logger = log.New(log.Writer(), "[PS] ", log.LstdFlags)
	}

	return &PaymentUseCase{
		logger:       logger,
		timeoutDelay: 10 * time.Second,
		now:          time.Now,
	}
}

// CreateCharge обрабатывает запрос на списание и возвращает исход.
// Результат заполнен только при OutcomeSucceeded.
func (u *PaymentUseCase) CreateCharge(req entity.ChargeRequest, idempotencyKey string) (entity.ChargeResult, ChargeOutcome) {
	u.logger.Printf("Запрос на списание для %s (идемпотентность: %s)", req.ReferenceID, idempotencyKey)

	if strings.HasPrefix(req.PaymentToken, "tok_decline_") {
		u.logger.Printf("[WARN] Платеж для %s отклонен.", req.ReferenceID)
		return entity.ChargeResult{}, OutcomeDeclined
	}

	if strings.HasPrefix(req.PaymentToken, "tok_timeout_") {
		u.logger.Printf("Имитируем таймаут для %s...", req.ReferenceID)
		time.Sleep(u.timeoutDelay)
		u.logger.Printf("[ERROR] Запрос %s с таймаутом завершен (слишком поздно).", req.ReferenceID)
		return entity.ChargeResult{}, OutcomeTimeout
	}

	u.logger.Printf("Платеж для %s успешен.", req.ReferenceID)
	return entity.ChargeResult{
		TransactionID: fmt.Sprintf("tr_%s", uuid.NewString()),
		Status:        "succeeded",
		CreatedAt:     u.now().UTC().Format(createdAtLayout),
	}, OutcomeSucceeded
}
