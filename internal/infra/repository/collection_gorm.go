package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type CollectionGormRepository struct {
	db *gorm.DB
}

func NewCollectionGormRepository(db *gorm.DB) *CollectionGormRepository {
	return &CollectionGormRepository{db: db}
}

// products_count is computed in the same query
func (r *CollectionGormRepository) withCount(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("collections").
		Select("collections.id, collections.title, COUNT(products.id) AS products_count").
		Joins("LEFT JOIN products ON products.collection_id = collections.id").
		Group("collections.id, collections.title")
}

func (r *CollectionGormRepository) List(ctx context.Context) ([]model.CollectionWithCount, error) {
	var out []model.CollectionWithCount
	if err := r.withCount(ctx).Order("collections.id asc").Scan(&out).Error; err != nil {
		return []model.CollectionWithCount{}, err
	}
	if out == nil {
		out = []model.CollectionWithCount{}
	}
	return out, nil
}

func (r *CollectionGormRepository) FindByID(ctx context.Context, id int64) (model.CollectionWithCount, error) {
	var out []model.CollectionWithCount
	if err := r.withCount(ctx).Where("collections.id = ?", id).Scan(&out).Error; err != nil {
		return model.CollectionWithCount{}, err
	}
	if len(out) == 0 {
		return model.CollectionWithCount{}, repo.ErrNotFound
	}
	return out[0], nil
}

func (r *CollectionGormRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Collection{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CollectionGormRepository) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Collection{}, translateErr(err)
	}
	return c, nil
}

func (r *CollectionGormRepository) Update(ctx context.Context, c model.Collection) error {
	res := r.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("id = ?", c.ID).
		Update("title", c.Title)

	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// products still pointing at the collection surface as ErrReferenced
func (r *CollectionGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Collection{}, id)

	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
