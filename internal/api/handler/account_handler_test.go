package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/userhub/accounts-api/internal/core/domain"
)

type stubAccountService struct {
	accounts []domain.Account
	listErr  error
	resets   int
}

func (s *stubAccountService) List(context.Context) ([]domain.Account, error) {
	return s.accounts, s.listErr
}

func (s *stubAccountService) Reset(context.Context) error {
	s.resets++
	return nil
}

func TestAccountHandler_List(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubAccountService{
		accounts: []domain.Account{
			{ID: 2, Username: "bob", Email: "bob@example.com", CreatedAt: now},
			{ID: 1, Username: "alice", Email: "alice@example.com", CreatedAt: now, LastLoginAt: &now},
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/users", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalUsers"] != float64(2) {
		t.Fatalf("expected totalUsers 2, got %v", resp["totalUsers"])
	}
	users, ok := resp["users"].([]any)
	if !ok || len(users) != 2 {
		t.Fatalf("expected 2 users, got %v", resp["users"])
	}
	first, _ := users[0].(map[string]any)
	if _, leaked := first["password_hash"]; leaked {
		t.Fatalf("password hash must never be serialized")
	}
}

func TestAccountHandler_Reset(t *testing.T) {
	stub := &stubAccountService{}
	h := NewAccountHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/users/reset", "")

	if err := h.Reset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.resets != 1 {
		t.Fatalf("expected one reset call, got %d", stub.resets)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalUsers"] != float64(0) {
		t.Fatalf("expected totalUsers 0, got %v", resp["totalUsers"])
	}
}
