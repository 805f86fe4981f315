package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	var items []model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Review{}, err
	}
	return items, nil
}

// reviews are always addressed through their product
func (r *ReviewGormRepository) FindByID(ctx context.Context, productID int64, reviewID int64) (model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", reviewID, productID).
		First(&rv).Error
	if err != nil {
		return model.Review{}, translateErr(err)
	}
	return rv, nil
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&rv).Error; err != nil {
		return model.Review{}, translateErr(err)
	}
	return rv, nil
}

func (r *ReviewGormRepository) Update(ctx context.Context, rv model.Review) error {
	res := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ? AND product_id = ?", rv.ID, rv.ProductID).
		Updates(map[string]interface{}{
			"name":        rv.Name,
			"description": rv.Description,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReviewGormRepository) Delete(ctx context.Context, productID int64, reviewID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", reviewID, productID).
		Delete(&model.Review{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReviewGormRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.Review{}).Error
}
