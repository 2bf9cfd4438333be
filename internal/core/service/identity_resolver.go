package service

import (
	"context"

	"github.com/platformkit/identity-api/internal/core/domain"
	"github.com/platformkit/identity-api/internal/core/ports"
)

// IdentityResolver maps a bearer token to the live identity it refers to.
// The token's embedded role and email are only a lookup hint: the identity
// is re-fetched from the directory on every call, so a deactivation or
// role change after issuance takes effect immediately, at the cost of one
// directory read per authenticated request.
type IdentityResolver struct {
	users ports.UserRepository
	codec *TokenCodec
}

func NewIdentityResolver(users ports.UserRepository, codec *TokenCodec) *IdentityResolver {
	return &IdentityResolver{users: users, codec: codec}
}

// Resolve parses and validates token, then re-fetches the subject from the
// directory. Every failure mode — bad signature, expiry, malformed token,
// unknown or inactive subject — collapses to ErrUnauthenticated so callers
// cannot distinguish a revoked subject from a forged token.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := r.codec.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
