package repository

import "context"

// TxRepos exposes repositories bound to one transaction.
type TxRepos interface {
	Collections() CollectionRepository
	Products() ProductRepository
	Inventory() InventoryRepository
	Reviews() ReviewRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Customers() CustomerRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager hides begin/commit/rollback from use cases.
// fn returning an error rolls the whole transaction back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
