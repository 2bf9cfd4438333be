package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/platformkit/identity-api/internal/api/middleware"
	"github.com/platformkit/identity-api/internal/core/domain"
)

// currentIdentity returns the identity resolved by the authenticate
// middleware. A nil identity here means the route was wired without the
// middleware; fail closed rather than trusting the gap.
func currentIdentity(c echo.Context) (*domain.User, error) {
	user := middleware.Identity(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
