package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

// CartUsecase serves anonymous carts addressed by their UUID.
type CartUsecase struct {
	repos repo.TxRepos
}

func NewCartUsecase(repos repo.TxRepos) *CartUsecase {
	return &CartUsecase{repos: repos}
}

type AddCartItemInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// findCart parses and loads the cart; malformed or unknown ids are 404.
func (u *CartUsecase) findCart(ctx context.Context, rawID string) (model.Cart, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return model.Cart{}, errNotFound
	}
	cart, err := u.repos.Carts().FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, errNotFound
	}
	if err != nil {
		return model.Cart{}, fmt.Errorf("find cart: %w", err)
	}
	return cart, nil
}

func (u *CartUsecase) Create(ctx context.Context) (CartOutput, error) {
	cart, err := u.repos.Carts().Create(ctx)
	if err != nil {
		return CartOutput{}, fmt.Errorf("create cart: %w", err)
	}
	return toCartOutput(cart, nil), nil
}

func (u *CartUsecase) Get(ctx context.Context, cartID string) (CartOutput, error) {
	cart, err := u.findCart(ctx, cartID)
	if err != nil {
		return CartOutput{}, err
	}
	items, err := u.repos.CartItems().ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartOutput{}, fmt.Errorf("list cart items: %w", err)
	}
	return toCartOutput(cart, items), nil
}

func (u *CartUsecase) Delete(ctx context.Context, cartID string) error {
	cart, err := u.findCart(ctx, cartID)
	if err != nil {
		return err
	}
	err = u.repos.Carts().Delete(ctx, cart.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func (u *CartUsecase) ListItems(ctx context.Context, cartID string) ([]CartItemOutput, error) {
	cart, err := u.findCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	items, err := u.repos.CartItems().ListByCartID(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return mapSlice(items, toCartItemOutput), nil
}

func (u *CartUsecase) GetItem(ctx context.Context, cartID string, itemID int64) (CartItemOutput, error) {
	cart, err := u.findCart(ctx, cartID)
	if err != nil {
		return CartItemOutput{}, err
	}
	item, err := u.repos.CartItems().FindByID(ctx, cart.ID, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, errNotFound
	}
	if err != nil {
		return CartItemOutput{}, fmt.Errorf("find cart item: %w", err)
	}
	return toCartItemOutput(item), nil
}

func validateQuantity(q int64) error {
	if q < 1 {
		return NewValidationError("quantity", "ensure this value is greater than or equal to 1")
	}
	if q > model.MaxCartItemQuantity {
		return errQuantityTooLarge
	}
	return nil
}

var errQuantityTooLarge = NewValidationError("quantity",
	fmt.Sprintf("ensure this value is less than or equal to %d", model.MaxCartItemQuantity))

// AddItem adds quantity to the product's line, creating it on first add.
// A sum past model.MaxCartItemQuantity is rejected and the line is kept.
func (u *CartUsecase) AddItem(ctx context.Context, cartID string, in AddCartItemInput) (CartItemOutput, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return CartItemOutput{}, err
	}
	cart, err := u.findCart(ctx, cartID)
	if err != nil {
		return CartItemOutput{}, err
	}

	ok, err := u.repos.Products().Exists(ctx, in.ProductID)
	if err != nil {
		return CartItemOutput{}, fmt.Errorf("find product: %w", err)
	}
	if !ok {
		return CartItemOutput{}, NewValidationError("product_id", "no product with the given id was found")
	}

	item, err := u.repos.CartItems().UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, in.Quantity)
	if errors.Is(err, repo.ErrNotFound) {
		// deleted between the check and the write
		return CartItemOutput{}, NewValidationError("product_id", "no product with the given id was found")
	}
	if errors.Is(err, repo.ErrLimitExceeded) {
		return CartItemOutput{}, errQuantityTooLarge
	}
	if err != nil {
		return CartItemOutput{}, fmt.Errorf("upsert cart item: %w", err)
	}
	return toCartItemOutput(item), nil
}

func (u *CartUsecase) UpdateItem(ctx context.Context, cartID string, itemID int64, in UpdateCartItemInput) (CartItemOutput, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return CartItemOutput{}, err
	}
	cart, err := u.findCart(ctx, cartID)
	if err != nil {
		return CartItemOutput{}, err
	}

	err = u.repos.CartItems().UpdateQuantity(ctx, cart.ID, itemID, in.Quantity)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, errNotFound
	}
	if err != nil {
		return CartItemOutput{}, fmt.Errorf("update cart item: %w", err)
	}
	return u.GetItem(ctx, cartID, itemID)
}

func (u *CartUsecase) DeleteItem(ctx context.Context, cartID string, itemID int64) error {
	cart, err := u.findCart(ctx, cartID)
	if err != nil {
		return err
	}
	err = u.repos.CartItems().Delete(ctx, cart.ID, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// SweepExpired removes carts created before cutoff; used by cmd/cartsweep.
func (u *CartUsecase) SweepExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := u.repos.Carts().DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep carts: %w", err)
	}
	return n, nil
}
