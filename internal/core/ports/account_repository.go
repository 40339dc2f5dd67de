package ports

import (
	"context"
	"time"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// AccountRepository is the credential store: the durable mapping from
// identity to password hash and account metadata. Identifiers passed in are
// expected to be normalized already (see domain.NormalizeIdentifier).
type AccountRepository interface {
	// FindByIdentifier looks up an active account by username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
	// FindByID looks up an active account by its id.
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// ExistsByUsernameOrEmail is the registration uniqueness pre-check. It
	// considers inactive accounts too; Create remains the source of truth.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Create persists a new account, assigning the next id in sequence.
	// Returns domain.ErrUserExists when a unique index is violated.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// TouchLastLogin records a successful login timestamp.
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	// ListAll returns every account, newest first.
	ListAll(ctx context.Context) ([]domain.Account, error)
	// DeleteAll removes every account and resets id sequencing. Irreversible.
	DeleteAll(ctx context.Context) error
}
