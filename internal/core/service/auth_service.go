package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/platformkit/identity-api/internal/core/domain"
	"github.com/platformkit/identity-api/internal/core/ports"
)

// AuthService validates credentials and issues sessions. It performs at
// most one directory read per call and never writes; the only write in the
// flow (creating an identity) belongs to the directory itself.
type AuthService struct {
	users    ports.UserRepository
	codec    *TokenCodec
	hasher   *PasswordHasher
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *TokenCodec, hasher *PasswordHasher, activity ports.ActivityRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, hasher: hasher, activity: activity, log: log}
}

// Login verifies email+password against the directory and issues a session.
// Unknown email and wrong password are indistinguishable to the caller; an
// inactive account is reported as such.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.validateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Enqueue(ports.LoginActivity{UserID: user.ID, At: time.Now().UTC()})
	}
	return session, nil
}

// Register creates an identity through the directory and issues a session
// for it. The display name splits on the first whitespace run: the first
// token is the first name, the joined remainder (possibly empty) the last.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	first, last := splitDisplayName(in.Name)
	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		FirstName:    first,
		LastName:     last,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	// Re-resolve the created identity so the session reflects exactly what
	// the directory stored (id, timestamps).
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	return s.issueSession(user)
}

// Refresh re-issues a session for an identity that has already passed
// token resolution. No credential check happens here; the router enforces
// that only authenticated callers reach this method.
func (s *AuthService) Refresh(ctx context.Context, user *domain.User) (*domain.Session, error) {
	return s.issueSession(user)
}

// validateCredentials resolves the identity record for email and checks
// the plaintext password against its stored hash.
func (s *AuthService) validateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrAccountInactive
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) issueSession(user *domain.User) (*domain.Session, error) {
	token, err := s.codec.Issue(user)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return nil, err
	}
	return &domain.Session{
		AccessToken: token,
		User:        user,
		TokenType:   domain.TokenType,
		ExpiresIn:   int64(s.codec.TTL().Seconds()),
	}, nil
}

// splitDisplayName breaks a raw display name into first/last parts. An
// empty remainder is allowed ("Prince" has no last name).
func splitDisplayName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
