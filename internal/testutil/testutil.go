// Package testutil opens throwaway databases and seeds catalog rows for tests.
package testutil

import (
	"strings"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/infra/db"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite returns a migrated in-memory database private to t.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + gofakeit.LetterN(8)
	gdb, err := db.OpenSQLite(db.MemoryDSN(name), nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func SeedCollection(t *testing.T, gdb *gorm.DB) model.Collection {
	t.Helper()
	c := model.Collection{Title: gofakeit.ProductCategory()}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

// SeedProduct creates a product priced at price (e.g. "10.00") with stock 100.
func SeedProduct(t *testing.T, gdb *gorm.DB, collectionID int64, price string) model.Product {
	t.Helper()
	title := gofakeit.ProductName()
	p := model.Product{
		Title:        title,
		Slug:         strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Description:  gofakeit.ProductDescription(),
		UnitPrice:    decimal.RequireFromString(price),
		Inventory:    100,
		CollectionID: collectionID,
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

// SeedUser stores a user; the password hash is a placeholder.
func SeedUser(t *testing.T, gdb *gorm.DB, role model.Role) model.User {
	t.Helper()
	u := model.User{
		Email:        gofakeit.Email(),
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func SeedCustomer(t *testing.T, gdb *gorm.DB, userID int64) model.Customer {
	t.Helper()
	c := model.Customer{UserID: userID, Phone: gofakeit.Phone(), Membership: model.MembershipBasic}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}
