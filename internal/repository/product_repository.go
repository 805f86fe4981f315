package repository

import (
	"context"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

type ProductListQuery struct {
	Page         int
	Limit        int
	Q            string
	CollectionID *int64
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InventoryLT  *int64
	Sort         string
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CountByCollectionID(ctx context.Context, collectionID int64) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}

// InventoryRepository changes stock and keeps the adjustment history.
type InventoryRepository interface {
	SetStock(ctx context.Context, productID int64, newStock int64) error
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
