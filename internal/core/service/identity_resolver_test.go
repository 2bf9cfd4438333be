package service

import (
	"context"
	"testing"
	"time"

	"github.com/platformkit/identity-api/internal/core/domain"
	"github.com/platformkit/identity-api/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		FirstName:    "Test",
		Email:        email,
		PasswordHash: "$2a$04$placeholderplaceholderpl",
		Role:         role,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestIdentityResolver_Success(t *testing.T) {
	repo := newStubUserRepo()
	codec := NewTokenCodec("secret", time.Hour)
	resolver := NewIdentityResolver(repo, codec)

	user := seedUser(t, repo, "alice@x.com", domain.RoleUser)
	token, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	resolved, err := resolver.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.ID != user.ID || resolved.Email != "alice@x.com" {
		t.Fatalf("unexpected identity: %+v", resolved)
	}
}

func TestIdentityResolver_InvalidToken(t *testing.T) {
	repo := newStubUserRepo()
	resolver := NewIdentityResolver(repo, NewTokenCodec("secret", time.Hour))

	if _, err := resolver.Resolve(context.Background(), "garbage"); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestIdentityResolver_WrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "alice@x.com", domain.RoleUser)

	otherCodec := NewTokenCodec("other-secret", time.Hour)
	token, _ := otherCodec.Issue(user)

	resolver := NewIdentityResolver(repo, NewTokenCodec("secret", time.Hour))
	if _, err := resolver.Resolve(context.Background(), token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestIdentityResolver_DeactivatedSubjectRejected(t *testing.T) {
	repo := newStubUserRepo()
	codec := NewTokenCodec("secret", time.Hour)
	resolver := NewIdentityResolver(repo, codec)

	user := seedUser(t, repo, "carol@x.com", domain.RoleUser)
	token, _ := codec.Issue(user)

	// Token is still unexpired, but the directory is the source of truth.
	if err := repo.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated after deactivation, got %v", err)
	}
}

func TestIdentityResolver_UnknownSubject(t *testing.T) {
	repo := newStubUserRepo()
	codec := NewTokenCodec("secret", time.Hour)
	resolver := NewIdentityResolver(repo, codec)

	token, _ := codec.Issue(&domain.User{ID: "deleted_user", Email: "x@x.com", Role: domain.RoleUser})

	if _, err := resolver.Resolve(context.Background(), token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for unknown subject, got %v", err)
	}
}

func TestIdentityResolver_RoleChangeTakesEffectImmediately(t *testing.T) {
	repo := newStubUserRepo()
	codec := NewTokenCodec("secret", time.Hour)
	resolver := NewIdentityResolver(repo, codec)

	user := seedUser(t, repo, "dave@x.com", domain.RoleAdmin)
	token, _ := codec.Issue(user)

	demoted := domain.RoleUser
	if _, err := repo.Update(context.Background(), user.ID, ports.UserUpdate{Role: &demoted}); err != nil {
		t.Fatalf("update role: %v", err)
	}

	resolved, err := resolver.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	// The token still claims admin; the live directory role wins.
	if resolved.Role != domain.RoleUser {
		t.Fatalf("expected live role user, got %s", resolved.Role)
	}
}
