package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"min=1,max=32767"`
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity" validate:"min=1,max=32767"`
}

// anonymous carts; the uuid in the path is the only credential
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) Create(c echo.Context) error {
	out, err := h.uc.Create(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) Get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ListItems(c echo.Context) error {
	out, err := h.uc.ListItems(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) GetItem(c echo.Context) error {
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.GetItem(c.Request().Context(), c.Param("id"), itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /carts/:id/items adds to an existing line for the same product.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.AddItem(c.Request().Context(), c.Param("id"), usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return writeError(c, err)
	}
	var req updateCartItemRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), c.Param("id"), itemID, usecase.UpdateCartItemInput{Quantity: req.Quantity})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) DeleteItem(c echo.Context) error {
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteItem(c.Request().Context(), c.Param("id"), itemID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
