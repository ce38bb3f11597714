package http

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/director74/shopag/integration-service/internal/entity"
	"github.com/director74/shopag/integration-service/internal/usecase"
	"github.com/director74/shopag/pkg/errors"
)

// OrderHandler обработчик HTTP запросов приема заказов от OMS
type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)

	v1 := router.Group("/v1")
	{
		v1.POST("/orders", h.SubmitOrder)
	}
}

func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SubmitOrder принимает заказ и отвечает 202 до завершения обработки
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	var order entity.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.orderUseCase.SubmitOrder(c.Request.Context(), order)
	if err != nil {
		var se *errors.ServiceError
		if stderrors.As(err, &se) && se.Code < http.StatusInternalServerError {
			c.JSON(se.Code, gin.H{"error": se.Message})
			return
		}
		errors.LogError(err, "SubmitOrder")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error while accepting order."})
		return
	}

	c.JSON(http.StatusAccepted, resp)
}
