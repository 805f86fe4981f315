package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"

	"github.com/google/uuid"
)

type CartRepository interface {
	Create(ctx context.Context) (model.Cart, error)
	FindByID(ctx context.Context, cartID uuid.UUID) (model.Cart, error)
	// Delete removes the cart together with its items.
	Delete(ctx context.Context, cartID uuid.UUID) error
	DeleteCreatedBefore(ctx context.Context, t time.Time) (int64, error)
}
