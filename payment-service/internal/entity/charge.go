package entity

// ChargeRequest входящий запрос на списание.
// Сумма передается в минимальных единицах валюты (центах).
type ChargeRequest struct {
	Amount       int64  `json:"amount" binding:"min=0"`
	Currency     string `json:"currency" binding:"required"`
	PaymentToken string `json:"paymentToken" binding:"required"`
	ReferenceID  string `json:"referenceId" binding:"required"`
}

// ChargeResult успешный результат списания
type ChargeResult struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// ChargeDeclined тело ответа при отклоненном платеже
type ChargeDeclined struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}
