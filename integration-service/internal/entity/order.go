package entity

import (
	"errors"
	"fmt"
	"strings"
)

// OrderItem позиция заказа: SKU и количество
type OrderItem struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// Order представляет новый заказ, принятый от OMS
type Order struct {
	OrderID      string      `json:"orderId" binding:"required"`
	PaymentToken string      `json:"paymentToken" binding:"required"`
	TotalAmount  float64     `json:"totalAmount" binding:"min=0"`
	Currency     string      `json:"currency" binding:"required,iso4217"`
	Items        []OrderItem `json:"items" binding:"required,min=1,dive"`
}

// Validate проверяет инварианты заказа до запуска саги.
// Заказ, прошедший эту проверку, адаптеры считают корректным.
func (o Order) Validate() error {
	if strings.TrimSpace(o.OrderID) == "" {
		return errors.New("orderId не задан")
	}
	if o.PaymentToken == "" {
		return errors.New("paymentToken не задан")
	}
	if o.TotalAmount < 0 {
		return errors.New("totalAmount не может быть отрицательным")
	}
	if len(o.Currency) != 3 {
		return errors.New("currency должен быть кодом ISO 4217")
	}
	if len(o.Items) == 0 {
		return errors.New("items не может быть пустым")
	}
	for i, item := range o.Items {
		if strings.TrimSpace(item.SKU) == "" {
			return fmt.Errorf("items[%d].sku не задан", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("items[%d].quantity должен быть больше нуля", i)
		}
	}
	return nil
}

// SubmitOrderResponse ответ на принятый заказ (семантика HTTP 202)
type SubmitOrderResponse struct {
	ProcessingID string `json:"processingId"`
	OrderID      string `json:"orderId"`
	Status       string `json:"status"`
}

// ReservationStatus статус резервирования из Inventory Service
type ReservationStatus string

const (
	ReservationReserved     ReservationStatus = "RESERVED"
	ReservationOutOfStock   ReservationStatus = "OUT_OF_STOCK"
	ReservationItemNotFound ReservationStatus = "ITEM_NOT_FOUND"
	ReservationUnknown      ReservationStatus = "UNKNOWN"
)

// Reservation результат вызова ReserveItems.
// Оркестратор держит его только на время саги и никуда не сохраняет.
type Reservation struct {
	ReservationID string
	Status        ReservationStatus
}

// ChargeRequest тело запроса POST /v2/charges к Payment Service
type ChargeRequest struct {
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	PaymentToken string `json:"paymentToken"`
	ReferenceID  string `json:"referenceId"`
}

// ChargeResult результат успешного списания
type ChargeResult struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// ShippingAddress адрес доставки в инструкции для WMS
type ShippingAddress struct {
	Name   string `json:"name"`
	Street string `json:"street"`
}

// ShipmentInstruction инструкция на отгрузку, публикуемая в очередь WMS
type ShipmentInstruction struct {
	InstructionID        string          `json:"instructionId"`
	OrderID              string          `json:"orderId"`
	InstructionTimestamp string          `json:"instructionTimestamp"`
	Items                []OrderItem     `json:"items"`
	ShippingAddress      ShippingAddress `json:"shippingAddress"`
}
