package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CollectionRepository interface {
	List(ctx context.Context) ([]model.CollectionWithCount, error)
	FindByID(ctx context.Context, id int64) (model.CollectionWithCount, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, c model.Collection) (model.Collection, error)
	Update(ctx context.Context, c model.Collection) error
	Delete(ctx context.Context, id int64) error
}
