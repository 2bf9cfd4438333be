package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/platformkit/identity-api/internal/api/metrics"
	"github.com/platformkit/identity-api/internal/core/domain"
)

// AccessRequirement declares, per operation, which identities may invoke
// it: public (no identity needed), any authenticated identity, or a
// non-empty set of allowed roles.
type AccessRequirement struct {
	public bool
	roles  map[domain.Role]struct{}
}

// Public marks an operation as requiring no identity at all.
func Public() AccessRequirement {
	return AccessRequirement{public: true}
}

// AnyAuthenticated marks an operation as open to every valid identity.
func AnyAuthenticated() AccessRequirement {
	return AccessRequirement{}
}

// RolesIn restricts an operation to the listed roles. Membership is exact;
// admin does not implicitly satisfy a manager-only requirement.
func RolesIn(roles ...domain.Role) AccessRequirement {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return AccessRequirement{roles: allowed}
}

// Authorize is the pure access decision: nil on allow,
// domain.ErrUnauthenticated when an identity is required but absent,
// domain.ErrForbidden when the identity's role is outside the allowed set.
func Authorize(identity *domain.User, req AccessRequirement) error {
	if req.public {
		return nil
	}
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if len(req.roles) > 0 {
		if _, ok := req.roles[identity.Role]; !ok {
			return domain.ErrForbidden
		}
	}
	return nil
}

// Require enforces an AccessRequirement on a route. It must be registered
// after Authenticate for every non-public route, so a missing or invalid
// token never reaches role evaluation.
func Require(req AccessRequirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := Authorize(Identity(c), req); err != nil {
				switch err {
				case domain.ErrForbidden:
					metrics.AuthzDecisionsTotal.WithLabelValues("forbidden").Inc()
				default:
					metrics.AuthzDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				}
				return err
			}
			metrics.AuthzDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}
