package domain

import "time"

// Role is the closed set of privilege levels. There is no implicit
// hierarchy: an operation allows exactly the roles it lists.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r belongs to the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// TokenType is the scheme label returned with every issued session.
const TokenType = "Bearer"

// User models a stored identity. The password hash never serializes
// outward; handlers additionally map users onto a response DTO that has no
// hash field at all.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is the value returned to a caller on successful login,
// registration or refresh. It is never persisted.
type Session struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
