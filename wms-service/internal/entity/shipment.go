package entity

// ShipmentItem позиция инструкции на отгрузку
type ShipmentItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// ShipmentInstruction входящая инструкция на отгрузку заказа
type ShipmentInstruction struct {
	InstructionID        string         `json:"instructionId"`
	OrderID              string         `json:"orderId"`
	InstructionTimestamp string         `json:"instructionTimestamp"`
	Items                []ShipmentItem `json:"items"`
}

// StatusUpdate исходящее статус-обновление по заказу
type StatusUpdate struct {
	OrderID         string `json:"orderId"`
	Status          string `json:"status"`
	UpdateTimestamp string `json:"updateTimestamp"`
	TrackingNumber  string `json:"trackingNumber,omitempty"`
}
