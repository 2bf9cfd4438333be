package ports

import (
	"context"

	"github.com/platformkit/identity-api/internal/core/domain"
)

// UserProfileUpdate is the plaintext counterpart of UserUpdate: the service
// hashes Password and validates Role before touching the directory.
type UserProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *domain.Role
	Active    *bool
}

// UserService exposes directory reads and profile maintenance to the API
// layer.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, update UserProfileUpdate) (*domain.User, error)
	Deactivate(ctx context.Context, id string) error
}
