package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

var maxUnitPrice = decimal.RequireFromString("99999999.99")

type ProductUsecase struct {
	repos repo.TxRepos
	tx    repo.TransactionManager
}

// DI
func NewProductUsecase(repos repo.TxRepos, tx repo.TransactionManager) *ProductUsecase {
	return &ProductUsecase{repos: repos, tx: tx}
}

// ListProductsInput is the GET /products query.
type ListProductsInput struct {
	PageInput
	Q            string
	CollectionID *int64
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InventoryLT  *int64
	Sort         string
}

type ProductInput struct {
	Title        string
	Slug         string
	Description  string
	UnitPrice    decimal.Decimal
	Inventory    int64
	CollectionID int64
}

type SetInventoryInput struct {
	Inventory int64
	Reason    string
}

type ClearInventoryInput struct {
	ProductIDs []int64
}

type ClearInventoryOutput struct {
	Updated int `json:"updated"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (PageOutput[ProductOutput], error) {
	page, err := in.PageInput.normalize()
	if err != nil {
		return PageOutput[ProductOutput]{}, err
	}
	if utf8.RuneCountInString(in.Q) > 100 {
		return PageOutput[ProductOutput]{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return PageOutput[ProductOutput]{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return PageOutput[ProductOutput]{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return PageOutput[ProductOutput]{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch in.Sort {
	case "", "unit_price", "-unit_price", "last_update", "-last_update":
	default:
		return PageOutput[ProductOutput]{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.repos.Products().List(ctx, repo.ProductListQuery{
		Page:         page.Page,
		Limit:        page.Limit,
		Q:            strings.TrimSpace(in.Q),
		CollectionID: in.CollectionID,
		MinPrice:     in.MinPrice,
		MaxPrice:     in.MaxPrice,
		InventoryLT:  in.InventoryLT,
		Sort:         in.Sort,
	})
	if err != nil {
		return PageOutput[ProductOutput]{}, fmt.Errorf("list products: %w", err)
	}

	return PageOutput[ProductOutput]{
		Items: mapSlice(items, toProductOutput),
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (ProductOutput, error) {
	p, err := u.repos.Products().FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, errNotFound
	}
	if err != nil {
		return ProductOutput{}, fmt.Errorf("find product: %w", err)
	}
	return toProductOutput(p), nil
}

// toModel checks the business rules the request binding cannot express.
func (u *ProductUsecase) toModel(ctx context.Context, in ProductInput) (model.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Product{}, NewValidationError("title", "this field may not be blank")
	}
	if err := checkMaxChars("title", title); err != nil {
		return model.Product{}, err
	}
	if !in.UnitPrice.IsPositive() {
		return model.Product{}, NewValidationError("unit_price", "ensure this value is greater than 0")
	}
	if in.UnitPrice.GreaterThan(maxUnitPrice) {
		return model.Product{}, NewValidationError("unit_price", "ensure that there are no more than 10 digits in total")
	}
	if !in.UnitPrice.Equal(in.UnitPrice.Truncate(2)) {
		return model.Product{}, NewValidationError("unit_price", "ensure that there are no more than 2 decimal places")
	}
	if in.Inventory < 0 {
		return model.Product{}, NewValidationError("inventory", "ensure this value is greater than or equal to 0")
	}

	ok, err := u.repos.Collections().Exists(ctx, in.CollectionID)
	if err != nil {
		return model.Product{}, fmt.Errorf("find collection: %w", err)
	}
	if !ok {
		return model.Product{}, NewValidationError("collection", "no collection with the given id was found")
	}

	slug := slugify(in.Slug)
	if slug == "" {
		slug = slugify(title)
	}

	return model.Product{
		Title:        title,
		Slug:         slug,
		Description:  strings.TrimSpace(in.Description),
		UnitPrice:    in.UnitPrice,
		Inventory:    in.Inventory,
		CollectionID: in.CollectionID,
	}, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (ProductOutput, error) {
	p, err := u.toModel(ctx, in)
	if err != nil {
		return ProductOutput{}, err
	}

	created, err := u.repos.Products().Create(ctx, p)
	if errors.Is(err, repo.ErrReferenced) {
		return ProductOutput{}, NewValidationError("collection", "no collection with the given id was found")
	}
	if err != nil {
		return ProductOutput{}, fmt.Errorf("create product: %w", err)
	}
	return toProductOutput(created), nil
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in ProductInput) (ProductOutput, error) {
	p, err := u.toModel(ctx, in)
	if err != nil {
		return ProductOutput{}, err
	}
	p.ID = id

	err = u.repos.Products().Update(ctx, p)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ProductOutput{}, errNotFound
	case errors.Is(err, repo.ErrReferenced):
		return ProductOutput{}, NewValidationError("collection", "no collection with the given id was found")
	case err != nil:
		return ProductOutput{}, fmt.Errorf("update product: %w", err)
	}
	return u.Get(ctx, id)
}

// Delete refuses (405) once any order item references the product.
// Reviews and cart lines go with it.
func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Products().Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("find product: %w", err)
		}
		if !ok {
			return errNotFound
		}

		n, err := r.OrderItems().CountByProductID(ctx, id)
		if err != nil {
			return fmt.Errorf("count order items: %w", err)
		}
		if n > 0 {
			return errProductReferenced
		}

		if err := r.Reviews().DeleteByProductID(ctx, id); err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := r.CartItems().DeleteByProductID(ctx, id); err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}

		err = r.Products().Delete(ctx, id)
		switch {
		case errors.Is(err, repo.ErrReferenced):
			return errProductReferenced
		case errors.Is(err, repo.ErrNotFound):
			return errNotFound
		case err != nil:
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
}

// SetInventory overwrites stock and records the adjustment and an audit row.
func (u *ProductUsecase) SetInventory(ctx context.Context, actorUserID int64, productID int64, in SetInventoryInput) (ProductOutput, error) {
	if actorUserID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Inventory < 0 {
		return ProductOutput{}, NewValidationError("inventory", "ensure this value is greater than or equal to 0")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return ProductOutput{}, NewValidationError("reason", "this field may not be blank")
	}
	if err := checkMaxChars("reason", reason); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound
		}
		if err != nil {
			return fmt.Errorf("find product: %w", err)
		}

		if err := adjustStock(ctx, r, actorUserID, p, in.Inventory, reason, model.AuditActionUpdateStock); err != nil {
			return err
		}

		p.Inventory = in.Inventory
		p.LastUpdate = time.Now()
		out = toProductOutput(p)
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}
	return out, nil
}

// ClearInventory zeroes stock for every listed product, all or nothing.
func (u *ProductUsecase) ClearInventory(ctx context.Context, actorUserID int64, in ClearInventoryInput) (ClearInventoryOutput, error) {
	if actorUserID <= 0 {
		return ClearInventoryOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.ProductIDs) == 0 {
		return ClearInventoryOutput{}, NewValidationError("product_ids", "this list may not be empty")
	}

	seen := make(map[int64]bool, len(in.ProductIDs))
	ids := make([]int64, 0, len(in.ProductIDs))
	for _, id := range in.ProductIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, id := range ids {
			p, err := r.Products().FindByID(ctx, id)
			if errors.Is(err, repo.ErrNotFound) {
				return NewValidationError("product_ids", fmt.Sprintf("no product with id %d was found", id))
			}
			if err != nil {
				return fmt.Errorf("find product: %w", err)
			}
			if err := adjustStock(ctx, r, actorUserID, p, 0, "clear inventory", model.AuditActionClearInventory); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ClearInventoryOutput{}, err
	}
	return ClearInventoryOutput{Updated: len(ids)}, nil
}

func adjustStock(ctx context.Context, r repo.TxRepos, actorUserID int64, p model.Product, newStock int64, reason string, action model.AuditAction) error {
	if err := r.Inventory().SetStock(ctx, p.ID, newStock); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound
		}
		return fmt.Errorf("set stock: %w", err)
	}

	now := time.Now()
	if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
		ProductID:   p.ID,
		StaffUserID: actorUserID,
		Delta:       newStock - p.Inventory,
		Reason:      reason,
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}

	return writeAudit(ctx, r, actorUserID, action, model.AuditResourceProduct, p.ID,
		map[string]interface{}{"inventory": p.Inventory},
		map[string]interface{}{"inventory": newStock, "reason": reason},
	)
}

func writeAudit(ctx context.Context, r repo.TxRepos, actorUserID int64, action model.AuditAction, resource model.AuditResourceType, resourceID int64, before, after map[string]interface{}) error {
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}

	if err := r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	}); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
