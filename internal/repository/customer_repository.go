package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CustomerRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.Customer, int64, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	// GetOrCreateByUserID is idempotent per user.
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Customer, error)
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	Update(ctx context.Context, c model.Customer) error
	Delete(ctx context.Context, id int64) error
}
