package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type reviewRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

// reviews are nested under /products/:id
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

// DI
func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) List(c echo.Context) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	reviewID, err := paramID(c, "review_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Get(c.Request().Context(), productID, reviewID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), productID, usecase.ReviewInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	reviewID, err := paramID(c, "review_id")
	if err != nil {
		return writeError(c, err)
	}
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Update(c.Request().Context(), productID, reviewID, usecase.ReviewInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	reviewID, err := paramID(c, "review_id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), productID, reviewID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
