package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartGormRepository serves both carts and cart_items.
type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// Create opens a new empty cart with a random id.
func (r *CartGormRepository) Create(ctx context.Context) (model.Cart, error) {
	cart := model.Cart{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByID(ctx context.Context, cartID uuid.UUID) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// Delete removes the items first, then the cart.
func (r *CartGormRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", cartID).Delete(&model.Cart{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// DeleteCreatedBefore drops abandoned carts and returns how many went.
func (r *CartGormRepository) DeleteCreatedBefore(ctx context.Context, t time.Time) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&model.Cart{}).Select("id").Where("created_at < ?", t)

		if err := tx.Where("cart_id IN (?)", stale).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Where("created_at < ?", t).Delete(&model.Cart{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ListByCartID returns the cart's items in insertion order.
func (r *CartGormRepository) ListByCartID(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

func (r *CartGormRepository) CountByCartID(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("cart_id = ?", cartID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindItem only finds items that belong to cartID.
func (r *CartGormRepository) FindItem(ctx context.Context, cartID uuid.UUID, itemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// UpsertByCartAndProduct adds addQty in one statement, so two concurrent
// adds of the same product end up as one row with the summed quantity.
// The conflict update only fires while the sum stays within
// model.MaxCartItemQuantity; otherwise nothing is written.
func (r *CartGormRepository) UpsertByCartAndProduct(ctx context.Context, cartID uuid.UUID, productID int64, addQty int64) (model.CartItem, error) {
	if addQty <= 0 {
		return model.CartItem{}, errors.New("invalid quantity")
	}
	if addQty > model.MaxCartItemQuantity {
		return model.CartItem{}, repo.ErrLimitExceeded
	}

	item := model.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  addQty,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("cart_items.quantity + excluded.quantity <= ?", model.MaxCartItemQuantity),
			}},
		}).
		Create(&item)
	if err := res.Error; err != nil {
		// the cart or product disappeared underneath us
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return model.CartItem{}, repo.ErrNotFound
		}
		return model.CartItem{}, err
	}
	if res.RowsAffected == 0 {
		return model.CartItem{}, repo.ErrLimitExceeded
	}

	var saved model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&saved).Error
	if err != nil {
		return model.CartItem{}, translateErr(err)
	}
	return saved, nil
}

func (r *CartGormRepository) UpdateQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, qty int64) error {
	if qty > model.MaxCartItemQuantity {
		return repo.ErrLimitExceeded
	}
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartGormRepository) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartGormRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.CartItem{}).Error
}

// CartItemGormRepository adapts the item half of CartGormRepository to
// repo.CartItemRepository, whose FindByID/Delete collide with the cart ones.
type CartItemGormRepository struct {
	*CartGormRepository
}

func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{CartGormRepository: NewCartGormRepository(db)}
}

func (r *CartItemGormRepository) FindByID(ctx context.Context, cartID uuid.UUID, itemID int64) (model.CartItem, error) {
	return r.FindItem(ctx, cartID, itemID)
}

func (r *CartItemGormRepository) Delete(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	return r.DeleteItem(ctx, cartID, itemID)
}

var (
	_ repo.CartRepository     = (*CartGormRepository)(nil)
	_ repo.CartItemRepository = (*CartItemGormRepository)(nil)
)
