package ports

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// AccountService covers the administrative operations over accounts.
type AccountService interface {
	// List returns all accounts, newest first.
	List(ctx context.Context) ([]domain.Account, error)
	// Reset deletes every account and resets id sequencing. Testing only.
	Reset(ctx context.Context) error
}
