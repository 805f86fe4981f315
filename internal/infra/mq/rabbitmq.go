// Package mq publishes domain events to RabbitMQ.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"storefront/internal/domain/model"

	"github.com/streadway/amqp"
	"golang.org/x/text/currency"
)

const (
	OrdersExchange         = "orders"
	OrderCreatedRoutingKey = "order.created"
)

// Publisher holds one AMQP connection and channel.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	currency currency.Unit

	// amqp.Channel is not safe for concurrent publishes
	mu sync.Mutex
}

// NewPublisher connects and declares the durable orders topic exchange.
// Amounts in published events are in cur.
func NewPublisher(url string, cur currency.Unit) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		OrdersExchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s exchange: %w", OrdersExchange, err)
	}

	return &Publisher{conn: conn, channel: ch, currency: cur}, nil
}

// Close closes the channel and then the connection.
func (p *Publisher) Close() error {
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("rabbitmq close: %v", errs)
	}
	return nil
}

// PublishOrderCreated sends ev as a persistent JSON message.
func (p *Publisher) PublishOrderCreated(ctx context.Context, ev model.OrderCreatedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := orderCreatedMessage(ev, p.currency, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := p.channel.Publish(OrdersExchange, OrderCreatedRoutingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", OrderCreatedRoutingKey, err)
	}
	return nil
}

type orderCreatedBody struct {
	model.OrderCreatedEvent
	Currency string `json:"currency"`
}

func orderCreatedMessage(ev model.OrderCreatedEvent, cur currency.Unit, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(orderCreatedBody{OrderCreatedEvent: ev, Currency: cur.String()})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal order event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         OrderCreatedRoutingKey,
		MessageId:    fmt.Sprintf("order-%d", ev.OrderID),
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Body:         body,
	}, nil
}
