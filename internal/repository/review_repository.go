package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ReviewRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
	FindByID(ctx context.Context, productID int64, reviewID int64) (model.Review, error)
	Create(ctx context.Context, r model.Review) (model.Review, error)
	Update(ctx context.Context, r model.Review) error
	Delete(ctx context.Context, productID int64, reviewID int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
}
