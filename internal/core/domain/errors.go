package domain

import "errors"

// Credential and account errors. Unknown email and wrong password both
// surface as ErrInvalidCredentials so the caller cannot probe which emails
// exist. ErrAccountInactive is deliberately distinguishable.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
)

// Request-time authorization errors.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access forbidden")
)

// Token errors returned by the codec. All of them collapse to
// ErrUnauthenticated once a token reaches the identity resolver.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)
