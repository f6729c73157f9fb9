package models

import "time"

// Identity is the decoded claim set of the current caller, extracted from the
// session credential for UI branching only. It is never persisted.
type Identity struct {
	UserID    string    `json:"id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}
