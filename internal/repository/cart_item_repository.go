package repository

import (
	"context"

	"storefront/internal/domain/model"

	"github.com/google/uuid"
)

type CartItemRepository interface {
	// ListByCartID returns items in insertion order with Product preloaded.
	ListByCartID(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error)
	CountByCartID(ctx context.Context, cartID uuid.UUID) (int64, error)
	FindByID(ctx context.Context, cartID uuid.UUID, itemID int64) (model.CartItem, error)
	// same product adds to the existing quantity; ErrLimitExceeded when the
	// sum would pass model.MaxCartItemQuantity (the row is left unchanged)
	UpsertByCartAndProduct(ctx context.Context, cartID uuid.UUID, productID int64, addQty int64) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, qty int64) error
	Delete(ctx context.Context, cartID uuid.UUID, itemID int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
}
