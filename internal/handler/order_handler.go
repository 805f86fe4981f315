package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type checkoutRequest struct {
	CartID string `json:"cart_id" validate:"required"`
}

type updateOrderRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending complete failed"`
}

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// POST /orders {"cart_id": "..."}
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	var req checkoutRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{CartID: req.CartID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) List(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := pageInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), caller, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Get(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /orders/:id (staff)
func (h *OrderHandler) Update(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req updateOrderRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdatePaymentStatus(c.Request().Context(), actorID, id, usecase.UpdateOrderInput{PaymentStatus: req.PaymentStatus})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /orders/:id (staff)
func (h *OrderHandler) Delete(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), actorID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
