package ports

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// EventRepository persists the security audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error)
}
