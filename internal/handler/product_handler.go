package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Slug        string           `json:"slug" validate:"omitempty,max=255"`
	Description string           `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"required"`
	Inventory   *int64           `json:"inventory" validate:"required,gte=0"`
	Collection  int64            `json:"collection" validate:"required,gt=0"`
}

func (r productRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Title:        r.Title,
		Slug:         r.Slug,
		Description:  r.Description,
		UnitPrice:    *r.UnitPrice,
		Inventory:    *r.Inventory,
		CollectionID: r.Collection,
	}
}

type inventoryRequest struct {
	Inventory *int64 `json:"inventory" validate:"required,gte=0"`
	Reason    string `json:"reason" validate:"required,max=255"`
}

type clearInventoryRequest struct {
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1,dive,gt=0"`
}

type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return &d, nil
}

// GET /products?page=&limit=&q=&collection_id=&min_price=&max_price=&inventory_lt=&sort=
func (h *ProductHandler) List(c echo.Context) error {
	page, err := pageInput(c)
	if err != nil {
		return writeError(c, err)
	}

	in := usecase.ListProductsInput{
		PageInput: page,
		Q:         c.QueryParam("q"),
		Sort:      c.QueryParam("sort"),
	}
	if in.CollectionID, err = queryInt64(c, "collection_id"); err != nil {
		return writeError(c, err)
	}
	if in.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		return writeError(c, err)
	}
	if in.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		return writeError(c, err)
	}
	if in.InventoryLT, err = queryInt64(c, "inventory_lt"); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req productRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PUT /products/:id/inventory
func (h *ProductHandler) SetInventory(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req inventoryRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.SetInventory(c.Request().Context(), actorID, id, usecase.SetInventoryInput{
		Inventory: *req.Inventory,
		Reason:    req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /products/clear-inventory
func (h *ProductHandler) ClearInventory(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	var req clearInventoryRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ClearInventory(c.Request().Context(), actorID, usecase.ClearInventoryInput{ProductIDs: req.ProductIDs})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
