package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// AuditLogFilter narrows GET /audit-logs; nil fields are ignored.
type AuditLogFilter struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Page         int
	Limit        int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// List returns newest first plus the unpaged total.
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, int64, error)
}
