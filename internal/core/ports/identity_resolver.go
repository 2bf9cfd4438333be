package ports

import (
	"context"

	"github.com/platformkit/identity-api/internal/core/domain"
)

// IdentityResolver turns an opaque bearer token into the live identity it
// refers to. Implementations must re-fetch the identity from the directory
// rather than trust the token's embedded claims, so deactivation and role
// changes take effect immediately.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
