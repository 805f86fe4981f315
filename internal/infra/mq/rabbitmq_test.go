package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestOrderCreatedMessage(t *testing.T) {
	placed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := model.NewOrderCreatedEvent(
		model.Order{ID: 7, CustomerID: 3, PlacedAt: placed},
		[]model.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	)

	msg, err := orderCreatedMessage(ev, currency.EUR, placed)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, "order-7", msg.MessageId)
	assert.Equal(t, OrderCreatedRoutingKey, msg.Type)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.EqualValues(t, 7, body["order_id"])
	assert.EqualValues(t, 3, body["customer_id"])
	assert.Equal(t, "25", body["total"])
	assert.Equal(t, "EUR", body["currency"])
	assert.Len(t, body["items"], 2)
}

func TestPublisher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Publisher{}
	err := p.PublishOrderCreated(ctx, model.OrderCreatedEvent{})
	assert.ErrorIs(t, err, context.Canceled)
}
