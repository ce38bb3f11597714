package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/director74/shopag/integration-service/internal/entity"
	"github.com/director74/shopag/integration-service/internal/usecase"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// Сага с всегда отказывающими фабриками: тесты контроллера проверяют
	// только прием, исход фоновой обработки здесь не важен
	saga := usecase.NewSagaOrchestrator(
		func() (usecase.InventoryGateway, error) { return nil, assert.AnError },
		func() usecase.PaymentGateway { return nil },
		func() (usecase.ShipmentGateway, error) { return nil, assert.AnError },
		nil,
	)
	uc := usecase.NewOrderUseCase(saga, nil)

	router := gin.New()
	NewOrderHandler(uc).RegisterRoutes(router)
	return router
}

func validOrderBody() []byte {
	body, _ := json.Marshal(entity.Order{
		OrderID:      "o1",
		PaymentToken: "tok_ok",
		TotalAmount:  149.99,
		Currency:     "EUR",
		Items:        []entity.OrderItem{{SKU: "A", Quantity: 2}},
	})
	return body
}

func TestSubmitOrder_Accepted(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(validOrderBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp entity.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "proc-o1", resp.ProcessingID)
	assert.Equal(t, "o1", resp.OrderID)
	assert.Equal(t, "Processing accepted", resp.Status)
}

func TestSubmitOrder_MalformedJSON(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestSubmitOrder_ValidationFailures(t *testing.T) {
	router := setupTestRouter()

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"без orderId", map[string]interface{}{
			"paymentToken": "tok", "totalAmount": 1.0, "currency": "EUR",
			"items": []map[string]interface{}{{"sku": "A", "quantity": 1}},
		}},
		{"пустые позиции", map[string]interface{}{
			"orderId": "o1", "paymentToken": "tok", "totalAmount": 1.0, "currency": "EUR",
			"items": []map[string]interface{}{},
		}},
		{"нулевое количество", map[string]interface{}{
			"orderId": "o1", "paymentToken": "tok", "totalAmount": 1.0, "currency": "EUR",
			"items": []map[string]interface{}{{"sku": "A", "quantity": 0}},
		}},
		{"отрицательная сумма", map[string]interface{}{
			"orderId": "o1", "paymentToken": "tok", "totalAmount": -1.0, "currency": "EUR",
			"items": []map[string]interface{}{{"sku": "A", "quantity": 1}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}
