package usecase

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/director74/shopag/payment-service/internal/entity"
)

func newTestUseCase() *PaymentUseCase {
	uc := NewPaymentUseCase(nil)
	uc.timeoutDelay = 0 // не спим в тестах
	uc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return uc
}

func chargeRequest(token string) entity.ChargeRequest {
	return entity.ChargeRequest{
		Amount:       14999,
		Currency:     "EUR",
		PaymentToken: token,
		ReferenceID:  "o1",
	}
}

func TestCreateCharge_Succeeded(t *testing.T) {
	uc := newTestUseCase()

	result, outcome := uc.CreateCharge(chargeRequest("tok_visa"), "key-1")

	assert.Equal(t, OutcomeSucceeded, outcome)
	assert.Regexp(t, regexp.MustCompile(`^tr_[0-9a-f-]{36}$`), result.TransactionID)
	assert.Equal(t, "succeeded", result.Status)
	assert.Equal(t, "2025-01-02T03:04:05Z", result.CreatedAt)
}

func TestCreateCharge_FreshTransactionIDPerCharge(t *testing.T) {
	uc := newTestUseCase()

	first, _ := uc.CreateCharge(chargeRequest("tok_visa"), "key-1")
	second, _ := uc.CreateCharge(chargeRequest("tok_visa"), "key-2")

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}

func TestCreateCharge_DeclinedByTokenPrefix(t *testing.T) {
	uc := newTestUseCase()

	result, outcome := uc.CreateCharge(chargeRequest("tok_decline_42"), "key-1")

	assert.Equal(t, OutcomeDeclined, outcome)
	assert.Empty(t, result.TransactionID)
}

func TestCreateCharge_TimeoutByTokenPrefix(t *testing.T) {
	uc := newTestUseCase()

	result, outcome := uc.CreateCharge(chargeRequest("tok_timeout_42"), "key-1")

	assert.Equal(t, OutcomeTimeout, outcome)
	assert.Empty(t, result.TransactionID)
}

func TestCreateCharge_PrefixMustMatchExactly(t *testing.T) {
	uc := newTestUseCase()

	// Маркер распознается только как префикс
	_, outcome := uc.CreateCharge(chargeRequest("my_tok_decline_42"), "key-1")

	assert.Equal(t, OutcomeSucceeded, outcome)
}
