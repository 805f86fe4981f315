package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

// DI
func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

// GET /audit-logs?action=&resource_type=&resource_id=&actor_user_id=&from=&to=&page=&limit=
func (h *AuditLogHandler) List(c echo.Context) error {
	page, err := pageInput(c)
	if err != nil {
		return writeError(c, err)
	}

	in := usecase.ListAuditLogsInput{
		PageInput:    page,
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		From:         c.QueryParam("from"),
		To:           c.QueryParam("to"),
	}
	if in.ActorUserID, err = queryInt64(c, "actor_user_id"); err != nil {
		return writeError(c, err)
	}
	if in.ResourceID, err = queryInt64(c, "resource_id"); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
