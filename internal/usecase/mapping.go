package usecase

import (
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// money renders decimals the way they are stored: two fixed places.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

const birthDateLayout = "2006-01-02"

type CollectionOutput struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	ProductsCount int64  `json:"products_count"`
}

func toCollectionOutput(c model.CollectionWithCount) CollectionOutput {
	return CollectionOutput{ID: c.ID, Title: c.Title, ProductsCount: c.ProductsCount}
}

type ProductOutput struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Inventory    int64     `json:"inventory"`
	UnitPrice    string    `json:"unit_price"`
	PriceWithTax string    `json:"price_with_tax"`
	Collection   int64     `json:"collection"`
	LastUpdate   time.Time `json:"last_update"`
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Inventory:    p.Inventory,
		UnitPrice:    money(p.UnitPrice),
		PriceWithTax: money(p.PriceWithTax()),
		Collection:   p.CollectionID,
		LastUpdate:   p.LastUpdate,
	}
}

// SimpleProductOutput is the product as embedded in cart and order items.
type SimpleProductOutput struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	UnitPrice string `json:"unit_price"`
}

func toSimpleProductOutput(p *model.Product, productID int64) SimpleProductOutput {
	if p == nil {
		return SimpleProductOutput{ID: productID}
	}
	return SimpleProductOutput{ID: p.ID, Title: p.Title, UnitPrice: money(p.UnitPrice)}
}

type ReviewOutput struct {
	ID          int64     `json:"id"`
	Product     int64     `json:"product"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func toReviewOutput(r model.Review) ReviewOutput {
	return ReviewOutput{
		ID:          r.ID,
		Product:     r.ProductID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
	}
}

type CartItemOutput struct {
	ID         int64               `json:"id"`
	Product    SimpleProductOutput `json:"product"`
	Quantity   int64               `json:"quantity"`
	TotalPrice string              `json:"total_price"`
}

// line total uses the live product price
func cartItemTotal(it model.CartItem) decimal.Decimal {
	if it.Product == nil {
		return decimal.Zero
	}
	return it.Product.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
}

func toCartItemOutput(it model.CartItem) CartItemOutput {
	return CartItemOutput{
		ID:         it.ID,
		Product:    toSimpleProductOutput(it.Product, it.ProductID),
		Quantity:   it.Quantity,
		TotalPrice: money(cartItemTotal(it)),
	}
}

type CartOutput struct {
	ID         string           `json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	Items      []CartItemOutput `json:"items"`
	TotalPrice string           `json:"total_price"`
}

func toCartOutput(c model.Cart, items []model.CartItem) CartOutput {
	out := CartOutput{
		ID:        c.ID.String(),
		CreatedAt: c.CreatedAt,
		Items:     make([]CartItemOutput, 0, len(items)),
	}
	total := decimal.Zero
	for _, it := range items {
		out.Items = append(out.Items, toCartItemOutput(it))
		total = total.Add(cartItemTotal(it))
	}
	out.TotalPrice = money(total)
	return out
}

type CustomerOutput struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	Phone      string  `json:"phone"`
	BirthDate  *string `json:"birth_date"`
	Membership string  `json:"membership"`
}

func toCustomerOutput(c model.Customer) CustomerOutput {
	out := CustomerOutput{
		ID:         c.ID,
		UserID:     c.UserID,
		Phone:      c.Phone,
		Membership: string(c.Membership),
	}
	if c.BirthDate != nil {
		s := c.BirthDate.Format(birthDateLayout)
		out.BirthDate = &s
	}
	return out
}

type OrderItemOutput struct {
	ID        int64               `json:"id"`
	Product   SimpleProductOutput `json:"product"`
	UnitPrice string              `json:"unit_price"`
	Quantity  int64               `json:"quantity"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	Customer      int64             `json:"customer"`
	PlacedAt      time.Time         `json:"placed_at"`
	PaymentStatus string            `json:"payment_status"`
	Items         []OrderItemOutput `json:"items"`
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	out := OrderOutput{
		ID:            o.ID,
		Customer:      o.CustomerID,
		PlacedAt:      o.PlacedAt,
		PaymentStatus: string(o.PaymentStatus),
		Items:         make([]OrderItemOutput, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, OrderItemOutput{
			ID:        it.ID,
			Product:   toSimpleProductOutput(it.Product, it.ProductID),
			UnitPrice: money(it.UnitPrice),
			Quantity:  it.Quantity,
		})
	}
	return out
}

type UserOutput struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func toUserOutput(u *model.User) UserOutput {
	return UserOutput{
		ID:       u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}

func mapSlice[T any, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
