package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is published after a checkout commits.
type OrderCreatedEvent struct {
	OrderID    int64                   `json:"order_id"`
	CustomerID int64                   `json:"customer_id"`
	PlacedAt   time.Time               `json:"placed_at"`
	Items      []OrderCreatedEventItem `json:"items"`
	Total      decimal.Decimal         `json:"total"`
}

type OrderCreatedEventItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewOrderCreatedEvent summarises a stored order and its items.
func NewOrderCreatedEvent(o Order, items []OrderItem) OrderCreatedEvent {
	ev := OrderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		PlacedAt:   o.PlacedAt,
		Items:      make([]OrderCreatedEventItem, 0, len(items)),
		Total:      decimal.Zero,
	}
	for _, it := range items {
		ev.Items = append(ev.Items, OrderCreatedEventItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
		ev.Total = ev.Total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return ev
}
