package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain/model"
	infrarepo "storefront/internal/infra/repository"
	"storefront/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductUsecase(t *testing.T) (*ProductUsecase, checkoutFixture) {
	t.Helper()
	f := newCheckoutFixture(t)
	return NewProductUsecase(f.repos, infrarepo.NewTxManagerGorm(f.gdb)), f
}

func TestProductUsecase_CreateValidates(t *testing.T) {
	ctx := context.Background()
	uc, f := newProductUsecase(t)

	valid := ProductInput{
		Title:        "Green Tea",
		UnitPrice:    decimal.RequireFromString("12.50"),
		Inventory:    3,
		CollectionID: f.a.CollectionID,
	}

	out, err := uc.Create(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, "green-tea", out.Slug)
	assert.Equal(t, "12.50", out.UnitPrice)
	assert.Equal(t, "13.75", out.PriceWithTax)

	// 200 characters, 400 bytes
	wide := valid
	wide.Title = strings.Repeat("ü", 200)
	_, err = uc.Create(ctx, wide)
	require.NoError(t, err)

	tests := []struct {
		name  string
		edit  func(in *ProductInput)
		field string
	}{
		{name: "blank title", edit: func(in *ProductInput) { in.Title = " " }, field: "title"},
		{name: "long title", edit: func(in *ProductInput) { in.Title = strings.Repeat("ü", 256) }, field: "title"},
		{name: "zero price", edit: func(in *ProductInput) { in.UnitPrice = decimal.Zero }, field: "unit_price"},
		{name: "three decimals", edit: func(in *ProductInput) { in.UnitPrice = decimal.RequireFromString("1.005") }, field: "unit_price"},
		{name: "negative inventory", edit: func(in *ProductInput) { in.Inventory = -1 }, field: "inventory"},
		{name: "unknown collection", edit: func(in *ProductInput) { in.CollectionID = 999 }, field: "collection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.edit(&in)

			_, err := uc.Create(ctx, in)
			he, ok := AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			assert.Contains(t, he.Fields, tt.field)
		})
	}
}

func TestProductUsecase_ListRejectsBadQuery(t *testing.T) {
	uc, _ := newProductUsecase(t)
	minPrice := decimal.RequireFromString("10")
	maxPrice := decimal.RequireFromString("5")

	for _, in := range []ListProductsInput{
		{Sort: "title"},
		{PageInput: PageInput{Page: -1}},
		{PageInput: PageInput{Limit: 101}},
		{MinPrice: &minPrice, MaxPrice: &maxPrice},
	} {
		_, err := uc.List(context.Background(), in)
		he, ok := AsHTTPError(err)
		require.True(t, ok, "%+v", in)
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}
}

func TestProductUsecase_DeleteGuard(t *testing.T) {
	ctx := context.Background()
	uc, f := newProductUsecase(t)
	cart := f.fillCart(t)

	orders := NewOrderUsecase(f.repos, infrarepo.NewTxManagerGorm(f.gdb), nil, nil)
	_, err := orders.Checkout(ctx, f.user.ID, CheckoutInput{CartID: cart.ID.String()})
	require.NoError(t, err)

	err = uc.Delete(ctx, f.a.ID)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusMethodNotAllowed, he.Status)
	assert.Equal(t, "product cannot be deleted because it is associated with an order item", he.Message)

	// unordered product in a cart goes, and its cart line with it
	col := testutil.SeedCollection(t, f.gdb)
	loose := testutil.SeedProduct(t, f.gdb, col.ID, "1.00")
	other, err := f.repos.Carts().Create(ctx)
	require.NoError(t, err)
	_, err = f.repos.CartItems().UpsertByCartAndProduct(ctx, other.ID, loose.ID, 1)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, loose.ID))
	n, err := f.repos.CartItems().CountByCartID(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	he, ok = AsHTTPError(uc.Delete(ctx, loose.ID))
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestProductUsecase_Inventory(t *testing.T) {
	ctx := context.Background()
	uc, f := newProductUsecase(t)
	staff := testutil.SeedUser(t, f.gdb, model.RoleStaff)

	out, err := uc.SetInventory(ctx, staff.ID, f.a.ID, SetInventoryInput{Inventory: 7, Reason: "recount"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Inventory)

	cleared, err := uc.ClearInventory(ctx, staff.ID, ClearInventoryInput{ProductIDs: []int64{f.a.ID, f.b.ID, f.a.ID}})
	require.NoError(t, err)
	assert.Equal(t, 2, cleared.Updated)

	for _, id := range []int64{f.a.ID, f.b.ID} {
		p, err := uc.Get(ctx, id)
		require.NoError(t, err)
		assert.Zero(t, p.Inventory)
	}
	assert.Equal(t, int64(3), countRows(t, f.gdb, &model.InventoryAdjustment{}))
	assert.Equal(t, int64(3), countRows(t, f.gdb, &model.AuditLog{}))

	// one unknown id rolls back the whole batch
	_, err = uc.SetInventory(ctx, staff.ID, f.a.ID, SetInventoryInput{Inventory: 5, Reason: "restock"})
	require.NoError(t, err)
	_, err = uc.ClearInventory(ctx, staff.ID, ClearInventoryInput{ProductIDs: []int64{f.a.ID, 999}})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Contains(t, he.Fields, "product_ids")

	p, err := uc.Get(ctx, f.a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Inventory)
}
