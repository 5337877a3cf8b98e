package domain

import "time"

// Admin is the single operator account. LoginToken holds the one active
// bearer token; each login overwrites it, so at most one session is valid
// per admin at a time. An empty token means logged out.
type Admin struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	LoginToken   string     `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
