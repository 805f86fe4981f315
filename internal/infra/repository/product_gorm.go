package repository

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// sort key -> ORDER BY; id breaks ties so pages stay stable
var productSorts = map[string]string{
	"":             "id asc",
	"unit_price":   "unit_price asc, id asc",
	"-unit_price":  "unit_price desc, id asc",
	"last_update":  "last_update asc, id asc",
	"-last_update": "last_update desc, id asc",
}

func (r *ProductGormRepository) filtered(ctx context.Context, q repo.ProductListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if q.CollectionID != nil {
		tx = tx.Where("collection_id = ?", *q.CollectionID)
	}
	if q.MinPrice != nil {
		tx = tx.Where("unit_price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("unit_price <= ?", *q.MaxPrice)
	}
	if q.InventoryLT != nil {
		tx = tx.Where("inventory < ?", *q.InventoryLT)
	}
	return tx
}

func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	order, ok := productSorts[q.Sort]
	if !ok {
		order = productSorts[""]
	}

	var items []model.Product
	err := r.filtered(ctx, q).
		Order(order).
		Limit(q.Limit).
		Offset(offsetOf(q.Page, q.Limit)).
		Find(&items).Error
	if err != nil {
		return []model.Product{}, 0, err
	}
	return items, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return model.Product{}, translateErr(err)
	}
	return p, nil
}

func (r *ProductGormRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductGormRepository) CountByCollectionID(ctx context.Context, collectionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// an unknown collection_id surfaces as ErrReferenced
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, translateErr(err)
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	// map so zero values (inventory 0, empty description) are written too
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"title":         p.Title,
			"slug":          p.Slug,
			"description":   p.Description,
			"unit_price":    p.UnitPrice,
			"inventory":     p.Inventory,
			"collection_id": p.CollectionID,
			"last_update":   time.Now(),
		})

	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)

	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
