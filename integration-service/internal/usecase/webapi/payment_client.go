package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/director74/shopag/integration-service/internal/entity"
)

const (
	connectTimeout = 5 * time.Second
	readTimeout    = 8 * time.Second
	// totalTimeout ограничивает запрос целиком, включая чтение тела ответа:
	// ResponseHeaderTimeout перестает действовать после получения заголовков
	totalTimeout = connectTimeout + readTimeout
)

// PaymentErrorKind различимый вид ошибки платежа
type PaymentErrorKind string

const (
	// PaymentDeclined платеж отклонен сервисом (HTTP 402)
	PaymentDeclined PaymentErrorKind = "declined"
	// PaymentHTTPError прочий неуспешный HTTP-статус (4xx/5xx)
	PaymentHTTPError PaymentErrorKind = "http_error"
	// PaymentTransportError таймаут чтения или ошибка соединения:
	// фактический статус платежа вызывающему неизвестен
	PaymentTransportError PaymentErrorKind = "transport"
	// PaymentDecodeError сервис ответил 2xx, но тело не разобрать
	PaymentDecodeError PaymentErrorKind = "decode"
)

// PaymentError структурная ошибка Payment Service
type PaymentError struct {
	Kind       PaymentErrorKind
	StatusCode int
	Err        error
}

// Error реализует интерфейс error
func (e *PaymentError) Error() string {
	switch e.Kind {
	case PaymentDeclined:
		return fmt.Sprintf("платеж отклонен (HTTP %d)", e.StatusCode)
	case PaymentHTTPError:
		return fmt.Sprintf("HTTP-ошибка платежа (HTTP %d)", e.StatusCode)
	case PaymentTransportError:
		return fmt.Sprintf("Payment Service недоступен: %v", e.Err)
	default:
		return fmt.Sprintf("ошибка разбора ответа Payment Service: %v", e.Err)
	}
}

// Unwrap возвращает оригинальную ошибку
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// PaymentClient представляет HTTP клиент для работы с Payment Service
type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewPaymentClient создает клиент с таймаутами: 5с на соединение, 8с на чтение
func NewPaymentClient(baseURL string) *PaymentClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: readTimeout,
	}

	return &PaymentClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   totalTimeout,
		},
		logger: log.New(log.Writer(), "[PaymentClient] ", log.LstdFlags),
	}
}

// CreateCharge создает списание через POST /v2/charges.
// На каждый вызов генерируется свежий UUIDv4 и передается в заголовке
// Idempotency-Key: если сервис дедуплицирует по этому ключу, намеренный
// повтор с тем же ключом безопасен.
func (c *PaymentClient) CreateCharge(ctx context.Context, orderID, token string, amountCents int64, currency string) (entity.ChargeResult, error) {
	idempotencyKey := uuid.NewString()

	reqBody := entity.ChargeRequest{
		Amount:       amountCents,
		Currency:     currency,
		PaymentToken: token,
		ReferenceID:  orderID,
	}

	reqBodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return entity.ChargeResult{}, fmt.Errorf("ошибка при маршалинге запроса: %w", err)
	}

	url := fmt.Sprintf("%s/v2/charges", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBodyJSON))
	if err != nil {
		return entity.ChargeResult{}, fmt.Errorf("ошибка при создании запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Таймаут чтения или ошибка соединения: статус платежа неизвестен.
		// Idempotency-Key оставляет возможность безопасного повтора.
		c.logger.Printf("[ERROR] [Order: %s] Payment Service недоступен: %v. Статус платежа неизвестен.", orderID, err)
		return entity.ChargeResult{}, &PaymentError{Kind: PaymentTransportError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Printf("[WARN] [Order: %s] Зачисление отклонено: %s", orderID, body)
		return entity.ChargeResult{}, &PaymentError{Kind: PaymentDeclined, StatusCode: resp.StatusCode}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Printf("[ERROR] [Order: %s] HTTP-ошибка при платеже: %s", orderID, resp.Status)
		return entity.ChargeResult{}, &PaymentError{Kind: PaymentHTTPError, StatusCode: resp.StatusCode}
	}

	var result entity.ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Таймаут на чтении тела: итог платежа так и не получен
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			c.logger.Printf("[ERROR] [Order: %s] Payment Service недоступен: %v. Статус платежа неизвестен.", orderID, err)
			return entity.ChargeResult{}, &PaymentError{Kind: PaymentTransportError, Err: err}
		}
		return entity.ChargeResult{}, &PaymentError{Kind: PaymentDecodeError, StatusCode: resp.StatusCode, Err: err}
	}

	return result, nil
}

// Close освобождает соединения HTTP клиента
func (c *PaymentClient) Close() {
	c.httpClient.CloseIdleConnections()
}
