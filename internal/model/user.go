package model

import "time"

// User is the subset of the users table the moderation paths need.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Roles allowed to place platform-wide (global) video blocks.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// IsPrivileged reports whether a role may act platform-wide.
func IsPrivileged(role string) bool {
	return role == RoleAdmin || role == RoleModerator
}
