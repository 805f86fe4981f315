package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	collections repo.CollectionRepository
	products    repo.ProductRepository
	inventory   repo.InventoryRepository
	reviews     repo.ReviewRepository
	carts       repo.CartRepository
	cartItems   repo.CartItemRepository
	customers   repo.CustomerRepository
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	auditLogs   repo.AuditLogRepository
}

func (r *txReposGorm) Collections() repo.CollectionRepository { return r.collections }
func (r *txReposGorm) Products() repo.ProductRepository       { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository    { return r.inventory }
func (r *txReposGorm) Reviews() repo.ReviewRepository         { return r.reviews }
func (r *txReposGorm) Carts() repo.CartRepository             { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository     { return r.cartItems }
func (r *txReposGorm) Customers() repo.CustomerRepository     { return r.customers }
func (r *txReposGorm) Orders() repo.OrderRepository           { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository     { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// NewTxRepos builds the repository set on db (a *gorm.DB inside a transaction).
func NewTxRepos(db *gorm.DB) repo.TxRepos {
	return &txReposGorm{
		collections: NewCollectionGormRepository(db),
		products:    NewProductGormRepository(db),
		inventory:   NewInventoryGormRepository(db),
		reviews:     NewReviewGormRepository(db),
		carts:       NewCartGormRepository(db),
		cartItems:   NewCartItemGormRepository(db),
		customers:   NewCustomerGormRepository(db),
		orders:      NewOrderGormRepository(db),
		orderItems:  NewOrderItemGormRepository(db),
		auditLogs:   NewAuditLogGormRepository(db),
	}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repos are rebuilt on tx
		return fn(NewTxRepos(tx))
	})
}
