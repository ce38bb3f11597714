package wmsapi

import (
	"regexp"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/director74/shopag/integration-service/internal/entity"
)

// fakeBroker записывает публикации вместо реального брокера
type fakeBroker struct {
	published []publishedMessage
	pubErr    error
	closed    bool
}

type publishedMessage struct {
	exchange   string
	routingKey string
	message    interface{}
}

func (f *fakeBroker) PublishMessage(exchange, routingKey string, message interface{}) error {
	if f.pubErr != nil {
		return f.pubErr
	}
	f.published = append(f.published, publishedMessage{exchange, routingKey, message})
	return nil
}

func (f *fakeBroker) PublishMessageWithRetry(exchange, routingKey string, message interface{}, retries int) error {
	return f.PublishMessage(exchange, routingKey, message)
}

func (f *fakeBroker) DeclareQueue(name string) error { return nil }

func (f *fakeBroker) Consume(queueName, consumerName string) (<-chan amqp.Delivery, error) {
	return nil, nil
}

func (f *fakeBroker) Close() error {
	f.closed = true
	return nil
}

var instructionTimestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

func TestSendShipment_PublishesInstruction(t *testing.T) {
	broker := &fakeBroker{}
	client := newWMSClientWithBroker(broker)

	items := []entity.OrderItem{
		{SKU: "B", Quantity: 1},
		{SKU: "A", Quantity: 3},
	}
	err := client.SendShipment("o1", items)

	require.NoError(t, err)
	require.Len(t, broker.published, 1)
	assert.Equal(t, "", broker.published[0].exchange)
	assert.Equal(t, ShipmentQueue, broker.published[0].routingKey)

	instruction, ok := broker.published[0].message.(entity.ShipmentInstruction)
	require.True(t, ok)
	assert.NotEmpty(t, instruction.InstructionID)
	assert.Equal(t, "o1", instruction.OrderID)
	// Метка времени в UTC с суффиксом Z
	assert.Regexp(t, instructionTimestampRe, instruction.InstructionTimestamp)
	// Позиции переносятся как есть, порядок сохранен
	assert.Equal(t, items, instruction.Items)
	assert.Equal(t, "Max Mustermann", instruction.ShippingAddress.Name)
	assert.Equal(t, "Testweg 1", instruction.ShippingAddress.Street)
}

func TestSendShipment_FreshInstructionIDPerPublish(t *testing.T) {
	broker := &fakeBroker{}
	client := newWMSClientWithBroker(broker)

	items := []entity.OrderItem{{SKU: "A", Quantity: 1}}
	require.NoError(t, client.SendShipment("o1", items))
	require.NoError(t, client.SendShipment("o1", items))

	require.Len(t, broker.published, 2)
	first := broker.published[0].message.(entity.ShipmentInstruction)
	second := broker.published[1].message.(entity.ShipmentInstruction)
	assert.NotEqual(t, first.InstructionID, second.InstructionID)
}

func TestSendShipment_PublishFailure(t *testing.T) {
	broker := &fakeBroker{pubErr: assert.AnError}
	client := newWMSClientWithBroker(broker)

	err := client.SendShipment("o1", []entity.OrderItem{{SKU: "A", Quantity: 1}})

	assert.Error(t, err)
	assert.Empty(t, broker.published)
}

func TestClose_ClosesBroker(t *testing.T) {
	broker := &fakeBroker{}
	client := newWMSClientWithBroker(broker)

	require.NoError(t, client.Close())
	assert.True(t, broker.closed)
}
