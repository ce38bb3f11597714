package grpcapi

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/director74/shopag/integration-service/internal/entity"
	"github.com/director74/shopag/pkg/inventorypb"
)

// fakeInventoryStub подменяет сгенерированный gRPC стаб
type fakeInventoryStub struct {
	reserveReq  *inventorypb.ReserveItemsRequest
	reserveResp *inventorypb.ReserveItemsResponse
	reserveErr  error

	releaseReq   *inventorypb.ReleaseItemsRequest
	releaseErr   error
	releaseCalls int
}

func (f *fakeInventoryStub) ReserveItems(ctx context.Context, in *inventorypb.ReserveItemsRequest, opts ...grpc.CallOption) (*inventorypb.ReserveItemsResponse, error) {
	f.reserveReq = in
	return f.reserveResp, f.reserveErr
}

func (f *fakeInventoryStub) ReleaseItems(ctx context.Context, in *inventorypb.ReleaseItemsRequest, opts ...grpc.CallOption) (*inventorypb.ReleaseItemsResponse, error) {
	f.releaseReq = in
	f.releaseCalls++
	if f.releaseErr != nil {
		return nil, f.releaseErr
	}
	return &inventorypb.ReleaseItemsResponse{Success: true}, nil
}

func newTestClient(stub inventorypb.InventoryServiceClient) *InventoryClient {
	return &InventoryClient{
		stub:   stub,
		logger: log.New(log.Writer(), "[InventoryClient] ", log.LstdFlags),
	}
}

func TestReserveItems_Reserved(t *testing.T) {
	stub := &fakeInventoryStub{
		reserveResp: &inventorypb.ReserveItemsResponse{
			ReservationId: "res-o1-100",
			Status:        inventorypb.ReservationStatus_RESERVED,
		},
	}
	client := newTestClient(stub)

	items := []entity.OrderItem{
		{SKU: "A", Quantity: 2},
		{SKU: "B", Quantity: 1},
	}
	reservation, err := client.ReserveItems(context.Background(), "o1", items)

	require.NoError(t, err)
	assert.Equal(t, "res-o1-100", reservation.ReservationID)
	assert.Equal(t, entity.ReservationReserved, reservation.Status)

	// Запрос собран из доменных позиций без потерь и в том же порядке
	require.NotNil(t, stub.reserveReq)
	assert.Equal(t, "o1", stub.reserveReq.GetOrderId())
	require.Len(t, stub.reserveReq.GetItems(), 2)
	assert.Equal(t, "A", stub.reserveReq.GetItems()[0].GetSku())
	assert.Equal(t, int32(2), stub.reserveReq.GetItems()[0].GetQuantity())
	assert.Equal(t, "B", stub.reserveReq.GetItems()[1].GetSku())
}

func TestReserveItems_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		proto    inventorypb.ReservationStatus
		expected entity.ReservationStatus
	}{
		{"RESERVED", inventorypb.ReservationStatus_RESERVED, entity.ReservationReserved},
		{"OUT_OF_STOCK", inventorypb.ReservationStatus_OUT_OF_STOCK, entity.ReservationOutOfStock},
		{"ITEM_NOT_FOUND", inventorypb.ReservationStatus_ITEM_NOT_FOUND, entity.ReservationItemNotFound},
		{"UNKNOWN", inventorypb.ReservationStatus_UNKNOWN, entity.ReservationUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &fakeInventoryStub{
				reserveResp: &inventorypb.ReserveItemsResponse{Status: tc.proto},
			}
			client := newTestClient(stub)

			reservation, err := client.ReserveItems(context.Background(), "o1", nil)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, reservation.Status)
		})
	}
}

func TestReserveItems_RPCError(t *testing.T) {
	stub := &fakeInventoryStub{
		reserveErr: status.Error(codes.Unavailable, "connection refused"),
	}
	client := newTestClient(stub)

	_, err := client.ReserveItems(context.Background(), "o1", nil)

	var invErr *InventoryError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, codes.Unavailable, invErr.Code)
	assert.Equal(t, "connection refused", invErr.Details)
}

func TestReserveItems_DeadlineExceeded(t *testing.T) {
	stub := &fakeInventoryStub{
		reserveErr: status.Error(codes.DeadlineExceeded, "context deadline exceeded"),
	}
	client := newTestClient(stub)

	_, err := client.ReserveItems(context.Background(), "o1", nil)

	var invErr *InventoryError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, codes.DeadlineExceeded, invErr.Code)
}

func TestReleaseItems_Success(t *testing.T) {
	stub := &fakeInventoryStub{}
	client := newTestClient(stub)

	err := client.ReleaseItems(context.Background(), "o1")

	require.NoError(t, err)
	assert.Equal(t, 1, stub.releaseCalls)
	require.NotNil(t, stub.releaseReq)
	assert.Equal(t, "o1", stub.releaseReq.GetOrderId())
}

func TestReleaseItems_FailureIsReturned(t *testing.T) {
	stub := &fakeInventoryStub{
		releaseErr: status.Error(codes.Unavailable, "connection refused"),
	}
	client := newTestClient(stub)

	err := client.ReleaseItems(context.Background(), "o1")

	// Ошибка компенсации не проглатывается
	var invErr *InventoryError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, codes.Unavailable, invErr.Code)
}
