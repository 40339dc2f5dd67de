package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// BcryptCost is the work factor applied when hashing passwords.
const BcryptCost = 12

var ErrInvalidInput = errors.New("invalid input")
var ErrUserExists = errors.New("username or email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrTooManyAttempts = errors.New("too many login attempts")

// emailPattern accepts local@domain.tld: non-whitespace local part,
// non-whitespace domain part containing at least one dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Account is a persisted identity with credentials.
type Account struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"-"`
}

// NormalizeIdentifier lowercases and trims a username or email. Every
// comparison and every persisted identity goes through this one function so
// registration and login can never disagree on case handling.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail reports whether s is syntactically acceptable as an email
// address. The check is deliberately shallow; deliverability is not our
// problem here.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
