package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderListFilter struct {
	Page       int
	Limit      int
	CustomerID *int64
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	CountByCustomerID(ctx context.Context, customerID int64) (int64, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
	Delete(ctx context.Context, orderID int64) error
}
