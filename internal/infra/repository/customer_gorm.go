package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) List(ctx context.Context, page int, limit int) ([]model.Customer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&total).Error; err != nil {
		return []model.Customer{}, 0, err
	}

	var items []model.Customer
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(limit).
		Offset(offsetOf(page, limit)).
		Find(&items).Error
	if err != nil {
		return []model.Customer{}, 0, err
	}
	return items, total, nil
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return model.Customer{}, translateErr(err)
	}
	return c, nil
}

// GetOrCreateByUserID finds the user's customer row or creates a basic one.
// A concurrent create loses on the unique user_id and re-reads the winner.
func (r *CustomerGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	var c model.Customer

	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, err
	}

	c = model.Customer{UserID: userID, Membership: model.MembershipBasic}
	// savepoint when already inside a transaction, so a lost race does not
	// abort the caller's transaction on postgres
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&c).Error
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.Customer{}, err
		}
		var existing model.Customer
		if retryErr := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; retryErr != nil {
			return model.Customer{}, retryErr
		}
		return existing, nil
	}
	return c, nil
}

func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if c.Membership == "" {
		c.Membership = model.MembershipBasic
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Customer{}, translateErr(err)
	}
	return c, nil
}

func (r *CustomerGormRepository) Update(ctx context.Context, c model.Customer) error {
	res := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"phone":      c.Phone,
			"birth_date": c.BirthDate,
			"membership": c.Membership,
		})

	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// a customer with orders surfaces as ErrReferenced
func (r *CustomerGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Customer{}, id)

	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
