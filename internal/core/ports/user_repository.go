package ports

import (
	"context"
	"time"

	"github.com/platformkit/identity-api/internal/core/domain"
)

// UserUpdate carries the partial fields of a profile update. Nil means
// "leave unchanged". Password is already hashed by the caller.
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	Role         *domain.Role
	Active       *bool
}

// UserRepository is the user directory: the external store of identities.
// It owns email uniqueness (at creation and at any email-changing update,
// scoped to other identities) and soft-delete semantics.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Deactivate(ctx context.Context, id string) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
}
