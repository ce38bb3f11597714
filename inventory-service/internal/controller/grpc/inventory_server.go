package grpc

import (
	"context"

	"github.com/director74/shopag/inventory-service/internal/usecase"
	"github.com/director74/shopag/pkg/inventorypb"
)

// InventoryServer gRPC-обертка над use case инвентаря
type InventoryServer struct {
	inventoryUseCase *usecase.InventoryUseCase
}

func NewInventoryServer(inventoryUseCase *usecase.InventoryUseCase) *InventoryServer {
	return &InventoryServer{
		inventoryUseCase: inventoryUseCase,
	}
}

// ReserveItems обрабатывает запрос на резервирование позиций заказа
func (s *InventoryServer) ReserveItems(ctx context.Context, req *inventorypb.ReserveItemsRequest) (*inventorypb.ReserveItemsResponse, error) {
	items := make([]usecase.Item, len(req.GetItems()))
	for i, item := range req.GetItems() {
		items[i] = usecase.Item{
			SKU:      item.GetSku(),
			Quantity: item.GetQuantity(),
		}
	}

	reservationID, status := s.inventoryUseCase.ReserveItems(req.GetOrderId(), items)

	return &inventorypb.ReserveItemsResponse{
		ReservationId: reservationID,
		Status:        toProtoStatus(status),
	}, nil
}

// ReleaseItems обрабатывает компенсационный запрос на освобождение резерва
func (s *InventoryServer) ReleaseItems(ctx context.Context, req *inventorypb.ReleaseItemsRequest) (*inventorypb.ReleaseItemsResponse, error) {
	success := s.inventoryUseCase.ReleaseItems(req.GetOrderId())

	return &inventorypb.ReleaseItemsResponse{Success: success}, nil
}

// toProtoStatus переводит доменный статус в protobuf
func toProtoStatus(s usecase.ReservationStatus) inventorypb.ReservationStatus {
	switch s {
	case usecase.StatusReserved:
		return inventorypb.ReservationStatus_RESERVED
	case usecase.StatusOutOfStock:
		return inventorypb.ReservationStatus_OUT_OF_STOCK
	case usecase.StatusItemNotFound:
		return inventorypb.ReservationStatus_ITEM_NOT_FOUND
	default:
		return inventorypb.ReservationStatus_UNKNOWN
	}
}
