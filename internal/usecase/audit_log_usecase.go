package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// AuditLogUsecase is the staff read side of the audit trail.
type AuditLogUsecase struct {
	repos repo.TxRepos
}

func NewAuditLogUsecase(repos repo.TxRepos) *AuditLogUsecase {
	return &AuditLogUsecase{repos: repos}
}

// ListAuditLogsInput mirrors the GET /audit-logs query; From/To are RFC3339.
type ListAuditLogsInput struct {
	PageInput
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	From         string
	To           string
}

type AuditLogOutput struct {
	ID           int64     `json:"id"`
	ActorUserID  int64     `json:"actor_user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   int64     `json:"resource_id"`
	Before       string    `json:"before"`
	After        string    `json:"after"`
	CreatedAt    time.Time `json:"created_at"`
}

func toAuditLogOutput(l model.AuditLog) AuditLogOutput {
	return AuditLogOutput{
		ID:           l.ID,
		ActorUserID:  l.ActorUserID,
		Action:       string(l.Action),
		ResourceType: string(l.ResourceType),
		ResourceID:   l.ResourceID,
		Before:       l.BeforeJSON,
		After:        l.AfterJSON,
		CreatedAt:    l.CreatedAt,
	}
}

func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) (PageOutput[AuditLogOutput], error) {
	page, err := in.PageInput.normalize()
	if err != nil {
		return PageOutput[AuditLogOutput]{}, err
	}

	f := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		Page:        page.Page,
		Limit:       page.Limit,
	}
	if s := strings.TrimSpace(in.Action); s != "" {
		a := model.AuditAction(strings.ToUpper(s))
		f.Action = &a
	}
	if s := strings.TrimSpace(in.ResourceType); s != "" {
		rt := model.AuditResourceType(strings.ToLower(s))
		f.ResourceType = &rt
	}

	var ok bool
	if in.From != "" {
		if f.CreatedFrom, ok = parseDateTimeRFC3339(in.From); !ok {
			return PageOutput[AuditLogOutput]{}, NewHTTPError(http.StatusBadRequest, "invalid from")
		}
	}
	if in.To != "" {
		if f.CreatedTo, ok = parseDateTimeRFC3339(in.To); !ok {
			return PageOutput[AuditLogOutput]{}, NewHTTPError(http.StatusBadRequest, "invalid to")
		}
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedFrom.After(*f.CreatedTo) {
		return PageOutput[AuditLogOutput]{}, NewHTTPError(http.StatusBadRequest, "from must be before to")
	}

	logs, total, err := u.repos.AuditLogs().List(ctx, f)
	if err != nil {
		return PageOutput[AuditLogOutput]{}, fmt.Errorf("list audit logs: %w", err)
	}
	return PageOutput[AuditLogOutput]{
		Items: mapSlice(logs, toAuditLogOutput),
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

func parseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
