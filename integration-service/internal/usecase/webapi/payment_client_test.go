package webapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/director74/shopag/integration-service/internal/entity"
)

func TestCreateCharge_Success(t *testing.T) {
	var gotReq entity.ChargeRequest
	var gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/charges", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotKey = r.Header.Get("Idempotency-Key")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entity.ChargeResult{
			TransactionID: "tr_abc",
			Status:        "succeeded",
			CreatedAt:     "2025-01-01T00:00:00Z",
		})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL)
	defer client.Close()

	result, err := client.CreateCharge(context.Background(), "o1", "tok_ok", 14999, "EUR")

	require.NoError(t, err)
	assert.Equal(t, "tr_abc", result.TransactionID)
	assert.Equal(t, "succeeded", result.Status)
	assert.NotEmpty(t, gotKey)
	// Сумма передается в центах, как есть
	assert.Equal(t, int64(14999), gotReq.Amount)
	assert.Equal(t, "EUR", gotReq.Currency)
	assert.Equal(t, "tok_ok", gotReq.PaymentToken)
	assert.Equal(t, "o1", gotReq.ReferenceID)
}

func TestCreateCharge_FreshIdempotencyKeyPerCall(t *testing.T) {
	keys := make([]string, 0, 2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		json.NewEncoder(w).Encode(entity.ChargeResult{TransactionID: "tr_1", Status: "succeeded"})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL)
	defer client.Close()

	_, err := client.CreateCharge(context.Background(), "o1", "tok_ok", 100, "EUR")
	require.NoError(t, err)
	_, err = client.CreateCharge(context.Background(), "o1", "tok_ok", 100, "EUR")
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEmpty(t, keys[1])
	// Ключ генерируется заново на каждый вызов
	assert.NotEqual(t, keys[0], keys[1])
}

func TestCreateCharge_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{
			"errorCode": "payment_declined",
			"message":   "Insufficient funds.",
		})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL)
	defer client.Close()

	_, err := client.CreateCharge(context.Background(), "o1", "tok_decline_1", 100, "EUR")

	var pe *PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PaymentDeclined, pe.Kind)
	assert.Equal(t, http.StatusPaymentRequired, pe.StatusCode)
}

func TestCreateCharge_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL)
	defer client.Close()

	_, err := client.CreateCharge(context.Background(), "o1", "tok_ok", 100, "EUR")

	var pe *PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PaymentHTTPError, pe.Kind)
	assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
}

func TestCreateCharge_ConnectionRefused(t *testing.T) {
	// Сервер закрыт до вызова: соединение гарантированно не установится
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewPaymentClient(server.URL)
	defer client.Close()

	_, err := client.CreateCharge(context.Background(), "o1", "tok_ok", 100, "EUR")

	var pe *PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PaymentTransportError, pe.Kind)
	assert.Error(t, pe.Err)
}

func TestCreateCharge_ReadTimeout(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release // сервис завис и не отдает заголовки
	}))
	defer server.Close()
	defer close(release)

	client := NewPaymentClient(server.URL)
	defer client.Close()
	// Укороченный таймаут чтения, чтобы тест не ждал боевые 8с
	client.httpClient.Transport.(*http.Transport).ResponseHeaderTimeout = 100 * time.Millisecond

	start := time.Now()
	_, err := client.CreateCharge(context.Background(), "o1", "tok_timeout_1", 100, "EUR")
	elapsed := time.Since(start)

	var pe *PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PaymentTransportError, pe.Kind)
	assert.Less(t, elapsed, 5*time.Second)

	<-started
}

func TestCreateCharge_BodyReadTimeout(t *testing.T) {
	release := make(chan struct{})

	// Сервис отдает заголовки и часть тела, после чего зависает:
	// таймаут заголовков здесь уже не действует
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"transactionId": "tr_`))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewPaymentClient(server.URL)
	defer client.Close()
	// Укороченный общий дедлайн, чтобы тест не ждал боевые секунды
	client.httpClient.Timeout = 200 * time.Millisecond

	start := time.Now()
	_, err := client.CreateCharge(context.Background(), "o1", "tok_ok", 100, "EUR")
	elapsed := time.Since(start)

	var pe *PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PaymentTransportError, pe.Kind)
	assert.Less(t, elapsed, 5*time.Second)
}

func TestCreateCharge_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL)
	defer client.Close()

	_, err := client.CreateCharge(context.Background(), "o1", "tok_ok", 100, "EUR")

	var pe *PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PaymentDecodeError, pe.Kind)
}

func TestDefaultTimeouts(t *testing.T) {
	client := NewPaymentClient("http://payment_service:8001")
	defer client.Close()

	assert.Equal(t, 5*time.Second, connectTimeout)
	assert.Equal(t, 8*time.Second, readTimeout)

	transport := client.httpClient.Transport.(*http.Transport)
	assert.Equal(t, readTimeout, transport.ResponseHeaderTimeout)
	// Общий дедлайн покрывает и чтение тела ответа
	assert.Equal(t, connectTimeout+readTimeout, client.httpClient.Timeout)
}
