package ports

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// AuthService defines the credential verification and token issuance flow.
type AuthService interface {
	// Register creates an account and issues a session token for it.
	Register(ctx context.Context, username, email, password string) (string, *domain.Account, error)
	// Login verifies credentials by username or email and issues a token.
	Login(ctx context.Context, identifier, password string) (string, *domain.Account, error)
	// Profile returns the active account behind an already-verified token.
	Profile(ctx context.Context, accountID int64) (*domain.Account, error)
}
