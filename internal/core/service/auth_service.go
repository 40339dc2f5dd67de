package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/accounts-api/internal/api/metrics"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

// LoginLimiter abstracts the failed-attempt throttle (Redis).
type LoginLimiter interface {
	// Allow reports whether identifier may attempt a login right now.
	Allow(ctx context.Context, identifier string) (bool, error)
	// RecordFailure counts one failed attempt against identifier.
	RecordFailure(ctx context.Context, identifier string) error
	// Reset clears the failure window after a successful login.
	Reset(ctx context.Context, identifier string) error
}

// AuthService implements registration, login and profile retrieval.
type AuthService struct {
	repo      ports.AccountRepository
	limiter   LoginLimiter
	audit     ports.AuditSink
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.AccountRepository,
	limiter LoginLimiter,
	audit ports.AuditSink,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		limiter:   limiter,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.Account, error) {
	// 1. All three fields are required.
	if username == "" || email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	// 2. Syntactic email check, before any store access.
	if !domain.ValidEmail(email) {
		return "", nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	// 3. Identity is case-insensitive; store lowercase only.
	username = domain.NormalizeIdentifier(username)
	email = domain.NormalizeIdentifier(email)

	// 4. Cheap early exit. The unique indexes behind Create remain the
	//    authoritative check for concurrent registrations.
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return "", nil, domain.ErrUserExists
	}

	// 5. Hash the password. The raw password is never stored or logged.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), domain.BcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("register: hash password: %w", err)
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}

	// 6. Persist. A duplicate-key error here means we lost the race to a
	//    concurrent registration with the same identity.
	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, fmt.Errorf("register: sign token: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	s.recordAudit(domain.ActionRegistered, created.Username, created.ID, "")
	s.log.Info().Int64("account_id", created.ID).Str("username", created.Username).Msg("account registered")

	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.Account, error) {
	if identifier == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	identifier = domain.NormalizeIdentifier(identifier)

	// Throttle before touching the store or bcrypt. A limiter outage must
	// not lock everyone out, so errors fail open.
	allowed, err := s.limiter.Allow(ctx, identifier)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
	} else if !allowed {
		metrics.LoginsThrottledTotal.Inc()
		return "", nil, domain.ErrTooManyAttempts
	}

	// Unknown identifier and wrong password are indistinguishable to the
	// caller; only the audit trail keeps the distinction.
	account, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.failLogin(ctx, identifier, "unknown_user")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.failLogin(ctx, account.Username, "wrong_password")
		return "", nil, domain.ErrInvalidCredentials
	}

	// Best effort: a failed timestamp update should not fail the login.
	now := time.Now().UTC()
	if err := s.repo.TouchLastLogin(ctx, account.ID, now); err != nil {
		s.log.Warn().Err(err).Int64("account_id", account.ID).Msg("failed to update last login")
	} else {
		account.LastLoginAt = &now
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	if err := s.limiter.Reset(ctx, identifier); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login limiter")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.recordAudit(domain.ActionLoginSuccess, account.Username, account.ID, "")

	return token, account, nil
}

// Profile returns the active account for an id taken from verified token
// claims. The account may have been deleted after the token was issued.
func (s *AuthService) Profile(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return account, nil
}

func (s *AuthService) failLogin(ctx context.Context, identifier, reason string) {
	if err := s.limiter.RecordFailure(ctx, identifier); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.recordAudit(domain.ActionLoginFailure, identifier, 0, reason)
}

func (s *AuthService) recordAudit(action, username string, accountID int64, reason string) {
	s.audit.Enqueue(ports.AuthEventInput{
		Action:    action,
		Username:  username,
		AccountID: accountID,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  account.ID,
		"username": account.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
