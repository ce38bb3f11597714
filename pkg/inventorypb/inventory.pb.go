// Package inventorypb содержит типы сообщений InventoryService.
// Структуры соответствуют inventory.proto и поддерживаются вручную
// (без кодогенерации); дескрипторы восстанавливаются рантаймом protobuf
// из тегов полей.
package inventorypb

import (
	"fmt"
)

// ReservationStatus статус резервирования товаров
type ReservationStatus int32

const (
	ReservationStatus_UNKNOWN        ReservationStatus = 0
	ReservationStatus_RESERVED       ReservationStatus = 1
	ReservationStatus_OUT_OF_STOCK   ReservationStatus = 2
	ReservationStatus_ITEM_NOT_FOUND ReservationStatus = 3
)

var ReservationStatus_name = map[int32]string{
	0: "UNKNOWN",
	1: "RESERVED",
	2: "OUT_OF_STOCK",
	3: "ITEM_NOT_FOUND",
}

var ReservationStatus_value = map[string]int32{
	"UNKNOWN":        0,
	"RESERVED":       1,
	"OUT_OF_STOCK":   2,
	"ITEM_NOT_FOUND": 3,
}

func (x ReservationStatus) String() string {
	if name, ok := ReservationStatus_name[int32(x)]; ok {
		return name
	}
	return fmt.Sprintf("ReservationStatus(%d)", int32(x))
}

// Item позиция заказа: SKU и количество
type Item struct {
	Sku      string `protobuf:"bytes,1,opt,name=sku,proto3" json:"sku,omitempty"`
	Quantity int32  `protobuf:"varint,2,opt,name=quantity,proto3" json:"quantity,omitempty"`
}

func (m *Item) Reset()         { *m = Item{} }
func (m *Item) String() string { return fmt.Sprintf("%+v", *m) }
func (*Item) ProtoMessage()    {}

func (m *Item) GetSku() string {
	if m != nil {
		return m.Sku
	}
	return ""
}

func (m *Item) GetQuantity() int32 {
	if m != nil {
		return m.Quantity
	}
	return 0
}

// ReserveItemsRequest запрос на резервирование позиций заказа
type ReserveItemsRequest struct {
	OrderId string  `protobuf:"bytes,1,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
	Items   []*Item `protobuf:"bytes,2,rep,name=items,proto3" json:"items,omitempty"`
}

func (m *ReserveItemsRequest) Reset()         { *m = ReserveItemsRequest{} }
func (m *ReserveItemsRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*ReserveItemsRequest) ProtoMessage()    {}

func (m *ReserveItemsRequest) GetOrderId() string {
	if m != nil {
		return m.OrderId
	}
	return ""
}

func (m *ReserveItemsRequest) GetItems() []*Item {
	if m != nil {
		return m.Items
	}
	return nil
}

// ReserveItemsResponse результат резервирования
type ReserveItemsResponse struct {
	ReservationId string            `protobuf:"bytes,1,opt,name=reservation_id,json=reservationId,proto3" json:"reservation_id,omitempty"`
	Status        ReservationStatus `protobuf:"varint,2,opt,name=status,proto3,enum=inventory.ReservationStatus" json:"status,omitempty"`
}

func (m *ReserveItemsResponse) Reset()         { *m = ReserveItemsResponse{} }
func (m *ReserveItemsResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*ReserveItemsResponse) ProtoMessage()    {}

func (m *ReserveItemsResponse) GetReservationId() string {
	if m != nil {
		return m.ReservationId
	}
	return ""
}

func (m *ReserveItemsResponse) GetStatus() ReservationStatus {
	if m != nil {
		return m.Status
	}
	return ReservationStatus_UNKNOWN
}

// ReleaseItemsRequest запрос на освобождение резерва (компенсация)
type ReleaseItemsRequest struct {
	OrderId string `protobuf:"bytes,1,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
}

func (m *ReleaseItemsRequest) Reset()         { *m = ReleaseItemsRequest{} }
func (m *ReleaseItemsRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*ReleaseItemsRequest) ProtoMessage()    {}

func (m *ReleaseItemsRequest) GetOrderId() string {
	if m != nil {
		return m.OrderId
	}
	return ""
}

// ReleaseItemsResponse результат освобождения резерва
type ReleaseItemsResponse struct {
	Success bool `protobuf:"varint,1,opt,name=success,proto3" json:"success,omitempty"`
}

func (m *ReleaseItemsResponse) Reset()         { *m = ReleaseItemsResponse{} }
func (m *ReleaseItemsResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*ReleaseItemsResponse) ProtoMessage()    {}

func (m *ReleaseItemsResponse) GetSuccess() bool {
	if m != nil {
		return m.Success
	}
	return false
}
