package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/director74/shopag/payment-service/internal/entity"
	"github.com/director74/shopag/payment-service/internal/usecase"
)

// PaymentHandler обработчик HTTP запросов платежного мока
type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)

	v2 := router.Group("/v2")
	{
		v2.POST("/charges", h.CreateCharge)
	}
}

func (h *PaymentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateCharge принимает запрос на списание.
// Заголовок Idempotency-Key обязателен: без него запрос отклоняется.
func (h *PaymentHandler) CreateCharge(c *gin.Context) {
	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Заголовок Idempotency-Key обязателен"})
		return
	}

	var req entity.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	result, outcome := h.paymentUseCase.CreateCharge(req, idempotencyKey)

	switch outcome {
	case usecase.OutcomeDeclined:
		c.JSON(http.StatusPaymentRequired, gin.H{
			"detail": entity.ChargeDeclined{
				ErrorCode: "payment_declined",
				Message:   "Карта отклонена.",
			},
		})
	case usecase.OutcomeTimeout:
		// Клиент к этому моменту уже отвалился по таймауту чтения
		c.JSON(http.StatusOK, nil)
	default:
		c.JSON(http.StatusOK, result)
	}
}
