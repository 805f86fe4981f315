package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionGormRepository_CountAndDeleteGuard(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	r := NewCollectionGormRepository(gdb)

	empty, err := r.Create(ctx, model.Collection{Title: "Empty"})
	require.NoError(t, err)
	full := testutil.SeedCollection(t, gdb)
	testutil.SeedProduct(t, gdb, full.ID, "1.00")
	testutil.SeedProduct(t, gdb, full.ID, "2.00")

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(0), list[0].ProductsCount)
	assert.Equal(t, int64(2), list[1].ProductsCount)

	got, err := r.FindByID(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, full.Title, got.Title)

	_, err = r.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, full.ID), repo.ErrReferenced)
	require.NoError(t, r.Delete(ctx, empty.ID))
	assert.ErrorIs(t, r.Delete(ctx, empty.ID), repo.ErrNotFound)
}

func TestProductGormRepository_ListFilters(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	r := NewProductGormRepository(gdb)

	c1 := testutil.SeedCollection(t, gdb)
	c2 := testutil.SeedCollection(t, gdb)
	cheap, err := r.Create(ctx, model.Product{Title: "Green Tea", Slug: "green-tea", UnitPrice: decimal.RequireFromString("3.50"), Inventory: 4, CollectionID: c1.ID})
	require.NoError(t, err)
	mid, err := r.Create(ctx, model.Product{Title: "Coffee Beans", Slug: "coffee-beans", Description: "dark roast", UnitPrice: decimal.RequireFromString("12.00"), Inventory: 40, CollectionID: c1.ID})
	require.NoError(t, err)
	dear, err := r.Create(ctx, model.Product{Title: "Teapot", Slug: "teapot", UnitPrice: decimal.RequireFromString("45.00"), Inventory: 2, CollectionID: c2.ID})
	require.NoError(t, err)

	ids := func(ps []model.Product) []int64 {
		out := make([]int64, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}
	minPrice := decimal.RequireFromString("5")
	maxPrice := decimal.RequireFromString("20")
	low := int64(10)

	tests := []struct {
		name  string
		q     repo.ProductListQuery
		want  []int64
		total int64
	}{
		{name: "all", q: repo.ProductListQuery{Page: 1, Limit: 10}, want: []int64{cheap.ID, mid.ID, dear.ID}, total: 3},
		{name: "search title and description", q: repo.ProductListQuery{Page: 1, Limit: 10, Q: "TEA"}, want: []int64{cheap.ID, dear.ID}, total: 2},
		{name: "search description", q: repo.ProductListQuery{Page: 1, Limit: 10, Q: "roast"}, want: []int64{mid.ID}, total: 1},
		{name: "collection", q: repo.ProductListQuery{Page: 1, Limit: 10, CollectionID: &c2.ID}, want: []int64{dear.ID}, total: 1},
		{name: "price range", q: repo.ProductListQuery{Page: 1, Limit: 10, MinPrice: &minPrice, MaxPrice: &maxPrice}, want: []int64{mid.ID}, total: 1},
		{name: "low inventory", q: repo.ProductListQuery{Page: 1, Limit: 10, InventoryLT: &low}, want: []int64{cheap.ID, dear.ID}, total: 2},
		{name: "price desc", q: repo.ProductListQuery{Page: 1, Limit: 10, Sort: "-unit_price"}, want: []int64{dear.ID, mid.ID, cheap.ID}, total: 3},
		{name: "second page", q: repo.ProductListQuery{Page: 2, Limit: 2, Sort: "unit_price"}, want: []int64{dear.ID}, total: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := r.List(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestProductGormRepository_UpdateAndDelete(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	r := NewProductGormRepository(gdb)
	c := testutil.SeedCollection(t, gdb)
	p := testutil.SeedProduct(t, gdb, c.ID, "9.99")

	p.Inventory = 0
	p.Title = "Renamed"
	require.NoError(t, r.Update(ctx, p))

	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, int64(0), got.Inventory)
	assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString("9.99")))

	_, err = r.Create(ctx, model.Product{Title: "x", Slug: "x", UnitPrice: decimal.NewFromInt(1), CollectionID: 12345})
	assert.ErrorIs(t, err, repo.ErrReferenced)

	require.NoError(t, r.Delete(ctx, p.ID))
	_, err = r.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCartGormRepository_UpsertAddsQuantity(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	carts := NewCartGormRepository(gdb)
	items := NewCartItemGormRepository(gdb)
	c := testutil.SeedCollection(t, gdb)
	p := testutil.SeedProduct(t, gdb, c.ID, "10.00")

	cart, err := carts.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, cart.ID)

	first, err := items.UpsertByCartAndProduct(ctx, cart.ID, p.ID, 2)
	require.NoError(t, err)
	second, err := items.UpsertByCartAndProduct(ctx, cart.ID, p.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Quantity)
	require.NotNil(t, second.Product)
	assert.Equal(t, p.Title, second.Product.Title)

	n, err := items.CountByCartID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = items.UpsertByCartAndProduct(ctx, cart.ID, 9999, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCartGormRepository_UpsertRespectsCap(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	items := NewCartItemGormRepository(gdb)
	c := testutil.SeedCollection(t, gdb)
	p := testutil.SeedProduct(t, gdb, c.ID, "1.00")
	cart, err := NewCartGormRepository(gdb).Create(ctx)
	require.NoError(t, err)

	_, err = items.UpsertByCartAndProduct(ctx, cart.ID, p.ID, model.MaxCartItemQuantity+1)
	assert.ErrorIs(t, err, repo.ErrLimitExceeded)

	item, err := items.UpsertByCartAndProduct(ctx, cart.ID, p.ID, model.MaxCartItemQuantity-1)
	require.NoError(t, err)
	_, err = items.UpsertByCartAndProduct(ctx, cart.ID, p.ID, 1)
	require.NoError(t, err)
	_, err = items.UpsertByCartAndProduct(ctx, cart.ID, p.ID, 1)
	assert.ErrorIs(t, err, repo.ErrLimitExceeded)

	got, err := items.FindByID(ctx, cart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MaxCartItemQuantity, got.Quantity)

	assert.ErrorIs(t, items.UpdateQuantity(ctx, cart.ID, item.ID, model.MaxCartItemQuantity+1), repo.ErrLimitExceeded)
}

func TestCartGormRepository_ConcurrentUpsert(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	items := NewCartItemGormRepository(gdb)
	c := testutil.SeedCollection(t, gdb)
	p := testutil.SeedProduct(t, gdb, c.ID, "1.00")
	cart, err := NewCartGormRepository(gdb).Create(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := items.UpsertByCartAndProduct(ctx, cart.ID, p.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := items.ListByCartID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(8), list[0].Quantity)
}

func TestCartGormRepository_ItemScopedToCart(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	carts := NewCartGormRepository(gdb)
	items := NewCartItemGormRepository(gdb)
	c := testutil.SeedCollection(t, gdb)
	p := testutil.SeedProduct(t, gdb, c.ID, "1.00")

	mine, err := carts.Create(ctx)
	require.NoError(t, err)
	other, err := carts.Create(ctx)
	require.NoError(t, err)
	item, err := items.UpsertByCartAndProduct(ctx, mine.ID, p.ID, 1)
	require.NoError(t, err)

	_, err = items.FindByID(ctx, other.ID, item.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, items.UpdateQuantity(ctx, other.ID, item.ID, 4), repo.ErrNotFound)
	assert.ErrorIs(t, items.Delete(ctx, other.ID, item.ID), repo.ErrNotFound)

	require.NoError(t, items.UpdateQuantity(ctx, mine.ID, item.ID, 4))
	got, err := items.FindByID(ctx, mine.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)

	require.NoError(t, carts.Delete(ctx, mine.ID))
	_, err = carts.FindByID(ctx, mine.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	n, err := items.CountByCartID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCartGormRepository_DeleteCreatedBefore(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	carts := NewCartGormRepository(gdb)
	c := testutil.SeedCollection(t, gdb)
	p := testutil.SeedProduct(t, gdb, c.ID, "1.00")

	old := model.Cart{ID: uuid.New(), CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}
	require.NoError(t, gdb.Create(&old).Error)
	require.NoError(t, gdb.Create(&model.CartItem{CartID: old.ID, ProductID: p.ID, Quantity: 1}).Error)
	fresh := model.Cart{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	require.NoError(t, gdb.Create(&fresh).Error)

	n, err := carts.DeleteCreatedBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = carts.FindByID(ctx, old.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = carts.FindByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestCustomerGormRepository_GetOrCreateIsIdempotent(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	r := NewCustomerGormRepository(gdb)
	u := testutil.SeedUser(t, gdb, model.RoleUser)

	first, err := r.GetOrCreateByUserID(ctx, u.ID)
	require.NoError(t, err)
	second, err := r.GetOrCreateByUserID(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.MembershipBasic, second.Membership)

	_, err = r.Create(ctx, model.Customer{UserID: u.ID})
	assert.ErrorIs(t, err, repo.ErrDuplicate)
}

func TestOrderGormRepository_CreateListAndGuard(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	orders := NewOrderGormRepository(gdb)
	orderItems := NewOrderItemGormRepository(gdb)
	customers := NewCustomerGormRepository(gdb)

	c := testutil.SeedCollection(t, gdb)
	p1 := testutil.SeedProduct(t, gdb, c.ID, "10.00")
	p2 := testutil.SeedProduct(t, gdb, c.ID, "5.00")
	cust := testutil.SeedCustomer(t, gdb, testutil.SeedUser(t, gdb, model.RoleUser).ID)

	o, err := orders.Create(ctx, model.Order{CustomerID: cust.ID, PlacedAt: time.Now(), PaymentStatus: model.PaymentStatusPending})
	require.NoError(t, err)
	require.NotZero(t, o.ID)

	require.NoError(t, orderItems.CreateBulk(ctx, o.ID, []model.OrderItem{
		{ProductID: p1.ID, UnitPrice: p1.UnitPrice, Quantity: 2},
		{ProductID: p2.ID, UnitPrice: p2.UnitPrice, Quantity: 1},
	}))

	got, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, p1.ID, got.Items[0].ProductID)
	assert.Equal(t, p2.ID, got.Items[1].ProductID)
	require.NotNil(t, got.Items[0].Product)

	list, total, err := orders.List(ctx, repo.OrderListFilter{Page: 1, Limit: 10, CustomerID: &cust.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	n, err := orderItems.CountByProductID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, customers.Delete(ctx, cust.ID), repo.ErrReferenced)

	require.NoError(t, orders.UpdatePaymentStatus(ctx, o.ID, model.PaymentStatusComplete))
	assert.ErrorIs(t, orders.UpdatePaymentStatus(ctx, 999, model.PaymentStatusComplete), repo.ErrNotFound)

	require.NoError(t, orderItems.DeleteByOrderID(ctx, o.ID))
	require.NoError(t, orders.Delete(ctx, o.ID))
	_, err = orders.FindByID(ctx, o.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUserGormRepository_DuplicateEmail(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	r := NewUserGormRepository(gdb)

	require.NoError(t, r.Create(ctx, &model.User{Email: "a@example.com", PasswordHash: "h", Role: model.RoleUser, IsActive: true}))
	err := r.Create(ctx, &model.User{Email: "a@example.com", PasswordHash: "h", Role: model.RoleUser, IsActive: true})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	_, err = r.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTxManagerGorm_RollsBackOnError(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	tm := NewTxManagerGorm(gdb)
	c := testutil.SeedCollection(t, gdb)

	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().Create(ctx, model.Product{Title: "t", Slug: "t", UnitPrice: decimal.NewFromInt(1), CollectionID: c.ID}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	n, err := NewProductGormRepository(gdb).CountByCollectionID(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReviewGormRepository_ScopedToProduct(t *testing.T) {
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()
	r := NewReviewGormRepository(gdb)
	c := testutil.SeedCollection(t, gdb)
	tea := testutil.SeedProduct(t, gdb, c.ID, "4.00")
	pot := testutil.SeedProduct(t, gdb, c.ID, "30.00")

	rv, err := r.Create(ctx, model.Review{ProductID: tea.ID, Name: "Ana", Description: "ok", Date: time.Now()})
	require.NoError(t, err)
	_, err = r.Create(ctx, model.Review{ProductID: tea.ID, Name: "Bo", Description: "fine", Date: time.Now()})
	require.NoError(t, err)

	list, err := r.ListByProductID(ctx, tea.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, rv.ID, list[0].ID)

	_, err = r.FindByID(ctx, pot.ID, rv.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, model.Review{ID: rv.ID, ProductID: pot.ID, Name: "x", Description: "y"}), repo.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, pot.ID, rv.ID), repo.ErrNotFound)

	require.NoError(t, r.Update(ctx, model.Review{ID: rv.ID, ProductID: tea.ID, Name: "Ana", Description: "better"}))
	got, err := r.FindByID(ctx, tea.ID, rv.ID)
	require.NoError(t, err)
	assert.Equal(t, "better", got.Description)

	require.NoError(t, r.DeleteByProductID(ctx, tea.ID))
	list, err = r.ListByProductID(ctx, tea.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
