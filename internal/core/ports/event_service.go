package ports

import (
	"context"
	"time"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// AuthEventInput carries a single audit entry from the auth flow to the
// dispatcher and on to a worker.
type AuthEventInput struct {
	Action    string
	Username  string
	AccountID int64
	Reason    string
	Timestamp time.Time
}

// AuditService processes audit events delivered by the dispatcher and
// serves read access to the trail.
type AuditService interface {
	Process(ctx context.Context, event AuthEventInput) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error)
}

// AuditSink accepts audit events without blocking the request path.
// Implemented by the queue dispatcher; stubbed in tests.
type AuditSink interface {
	Enqueue(event AuthEventInput)
}
