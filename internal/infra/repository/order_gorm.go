package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// items in the order they were written at checkout
func preloadItems(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id asc") }).
		Preload("Items.Product")
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := preloadItems(r.db.WithContext(ctx)).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		if f.CustomerID != nil {
			tx = tx.Where("customer_id = ?", *f.CustomerID)
		}
		return tx
	}

	var total int64
	if err := scope(r.db.WithContext(ctx).Model(&model.Order{})).Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	err := scope(preloadItems(r.db.WithContext(ctx))).
		Order("id desc").
		Limit(f.Limit).
		Offset(offsetOf(f.Page, f.Limit)).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) CountByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create writes the order row only; items go through OrderItemRepository.
func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	order.Items = nil
	order.Customer = nil
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, translateErr(err)
	}
	return order, nil
}

func (r *OrderGormRepository) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)

	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
