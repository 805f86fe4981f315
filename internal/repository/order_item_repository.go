package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderItemRepository interface {
	// CreateBulk inserts all items in one statement, keeping slice order.
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	CountByProductID(ctx context.Context, productID int64) (int64, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
