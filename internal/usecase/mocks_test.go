package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// fakeRepos hands out whatever repositories a test sets; nil ones panic on use.
type fakeRepos struct {
	collections repo.CollectionRepository
	products    repo.ProductRepository
	orders      repo.OrderRepository
	auditLogs   repo.AuditLogRepository
}

func (f *fakeRepos) Collections() repo.CollectionRepository { return f.collections }
func (f *fakeRepos) Products() repo.ProductRepository       { return f.products }
func (f *fakeRepos) Inventory() repo.InventoryRepository    { return nil }
func (f *fakeRepos) Reviews() repo.ReviewRepository         { return nil }
func (f *fakeRepos) Carts() repo.CartRepository             { return nil }
func (f *fakeRepos) CartItems() repo.CartItemRepository     { return nil }
func (f *fakeRepos) Customers() repo.CustomerRepository     { return nil }
func (f *fakeRepos) Orders() repo.OrderRepository           { return f.orders }
func (f *fakeRepos) OrderItems() repo.OrderItemRepository   { return nil }
func (f *fakeRepos) AuditLogs() repo.AuditLogRepository     { return f.auditLogs }

// fakeTx runs fn against the same fake repos and counts calls.
type fakeTx struct {
	repos *fakeRepos
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	f.calls++
	return fn(f.repos)
}

type collectionRepoMock struct {
	mock.Mock
	repo.CollectionRepository
}

func (m *collectionRepoMock) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *collectionRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type productRepoMock struct {
	mock.Mock
	repo.ProductRepository
}

func (m *productRepoMock) CountByCollectionID(ctx context.Context, collectionID int64) (int64, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).(int64), args.Error(1)
}

type orderRepoMock struct {
	mock.Mock
	repo.OrderRepository
}

func (m *orderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *orderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

type auditLogRepoMock struct {
	mock.Mock
	repo.AuditLogRepository
}

func (m *auditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}
