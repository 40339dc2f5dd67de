package domain

import "time"

// Audit actions recorded for authentication activity.
const (
	ActionRegistered   = "registered"
	ActionLoginSuccess = "login_success"
	ActionLoginFailure = "login_failure"
)

// AuthEvent is a single entry in the security audit trail.
type AuthEvent struct {
	Action    string    `json:"action"`
	Username  string    `json:"username"`
	AccountID int64     `json:"account_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
