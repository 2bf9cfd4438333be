package service

import (
	"context"

	"github.com/platformkit/identity-api/internal/core/domain"
	"github.com/platformkit/identity-api/internal/core/ports"
)

// UserService exposes directory reads and profile maintenance. Email
// uniqueness on updates is owned by the directory; password re-hashing and
// role validation happen here.
type UserService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
}

func NewUserService(users ports.UserRepository, hasher *PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial profile update. A supplied plaintext password is
// hashed before it reaches the directory; a supplied role must belong to
// the closed set.
func (s *UserService) Update(ctx context.Context, id string, update ports.UserProfileUpdate) (*domain.User, error) {
	if update.Role != nil && !domain.ValidRole(*update.Role) {
		return nil, domain.ErrInvalidRole
	}

	repoUpdate := ports.UserUpdate{
		FirstName: update.FirstName,
		LastName:  update.LastName,
		Email:     update.Email,
		Role:      update.Role,
		Active:    update.Active,
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		repoUpdate.PasswordHash = &hash
	}

	return s.users.Update(ctx, id, repoUpdate)
}

// Deactivate soft-deletes an identity. The record stays in the directory;
// resolution and login reject it from the next request on.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.users.Deactivate(ctx, id)
}
