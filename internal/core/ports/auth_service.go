package ports

import (
	"context"

	"github.com/platformkit/identity-api/internal/core/domain"
)

// RegisterInput is the payload accepted by AuthService.Register. Name is
// the raw display name; the service splits it into first/last parts. Role
// is optional and defaults to domain.RoleUser.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService authenticates credentials and issues sessions.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, in RegisterInput) (*domain.Session, error)
	// Refresh re-issues a session for an already-resolved identity. It
	// performs no credential check; the router only reaches it behind the
	// authenticate middleware.
	Refresh(ctx context.Context, user *domain.User) (*domain.Session, error)
}
