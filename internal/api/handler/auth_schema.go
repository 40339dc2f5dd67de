package handler

import "github.com/userhub/accounts-api/internal/core/domain"

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest takes a username or an email in the username field.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string          `json:"message,omitempty"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

type profileResponse struct {
	User *domain.Account `json:"user"`
}

type usersResponse struct {
	TotalUsers int              `json:"totalUsers"`
	Users      []domain.Account `json:"users"`
}

type resetResponse struct {
	Message    string `json:"message"`
	TotalUsers int    `json:"totalUsers"`
}

type auditResponse struct {
	Events []domain.AuthEvent `json:"events"`
}
