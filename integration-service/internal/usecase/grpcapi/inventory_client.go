package grpcapi

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/director74/shopag/integration-service/internal/entity"
	"github.com/director74/shopag/pkg/inventorypb"
)

// Дедлайн каждого вызова к Inventory Service
const callTimeout = 5 * time.Second

// InventoryError структурная ошибка RPC-вызова к Inventory Service
type InventoryError struct {
	Code    codes.Code
	Details string
}

// Error реализует интерфейс error
func (e *InventoryError) Error() string {
	return fmt.Sprintf("gRPC вызов к IS завершился ошибкой: %s - %s", e.Code, e.Details)
}

// InventoryClient представляет gRPC клиент Inventory Service.
// Экземпляр держит один логический канал на все время жизни;
// канал освобождается вызовом Close.
type InventoryClient struct {
	conn   *grpc.ClientConn
	stub   inventorypb.InventoryServiceClient
	logger *log.Logger
}

// NewInventoryClient создает клиент и открывает канал к Inventory Service
func NewInventoryClient(target string) (*InventoryClient, error) {
	conn, err := grpc.NewClient(
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать gRPC канал к %s: %w", target, err)
	}

	return &InventoryClient{
		conn:   conn,
		stub:   inventorypb.NewInventoryServiceClient(conn),
		logger: log.New(log.Writer(), "[InventoryClient] ", log.LstdFlags),
	}, nil
}

// ReserveItems резервирует позиции заказа в Inventory Service
func (c *InventoryClient) ReserveItems(ctx context.Context, orderID string, items []entity.OrderItem) (entity.Reservation, error) {
	protoItems := make([]*inventorypb.Item, len(items))
	for i, item := range items {
		protoItems[i] = &inventorypb.Item{
			Sku:      item.SKU,
			Quantity: int32(item.Quantity),
		}
	}

	request := &inventorypb.ReserveItemsRequest{
		OrderId: orderID,
		Items:   protoItems,
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	response, err := c.stub.ReserveItems(callCtx, request)
	if err != nil {
		st, _ := status.FromError(err)
		c.logger.Printf("[ERROR] [Order: %s] gRPC вызов к IS не удался: %s - %s", orderID, st.Code(), st.Message())
		return entity.Reservation{}, &InventoryError{Code: st.Code(), Details: st.Message()}
	}

	return entity.Reservation{
		ReservationID: response.GetReservationId(),
		Status:        toReservationStatus(response.GetStatus()),
	}, nil
}

// ReleaseItems освобождает резерв (компенсация).
// Ошибка никогда не проглатывается: она логируется с максимальной
// серьезностью и возвращается оркестратору.
func (c *InventoryClient) ReleaseItems(ctx context.Context, orderID string) error {
	c.logger.Printf("[Order: %s] Компенсация: отправляем ReleaseItems в IS.", orderID)

	request := &inventorypb.ReleaseItemsRequest{OrderId: orderID}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if _, err := c.stub.ReleaseItems(callCtx, request); err != nil {
		st, _ := status.FromError(err)
		c.logger.Printf("[ERROR] [Order: %s] КОМПЕНСАЦИЯ НЕ ВЫПОЛНЕНА: %s. ТРЕБУЕТСЯ РУЧНОЕ ВМЕШАТЕЛЬСТВО!", orderID, st.Message())
		return &InventoryError{Code: st.Code(), Details: st.Message()}
	}

	return nil
}

// Close освобождает gRPC канал
func (c *InventoryClient) Close() error {
	return c.conn.Close()
}

// toReservationStatus переводит protobuf-статус в доменный
func toReservationStatus(s inventorypb.ReservationStatus) entity.ReservationStatus {
	switch s {
	case inventorypb.ReservationStatus_RESERVED:
		return entity.ReservationReserved
	case inventorypb.ReservationStatus_OUT_OF_STOCK:
		return entity.ReservationOutOfStock
	case inventorypb.ReservationStatus_ITEM_NOT_FOUND:
		return entity.ReservationItemNotFound
	default:
		return entity.ReservationUnknown
	}
}
