package services

import (
	"context"
	"errors"

	"oasis/app/auth"
	"oasis/app/models"
	"oasis/app/repositories"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not distinguish the two; doing so enables
	// username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized marks requests whose session does not resolve to a
	// live user.
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthService handles signup, login and session-to-user resolution.
type AuthService struct {
	users  repositories.UserStore
	hasher *auth.PasswordHasher
}

func NewAuthService(users repositories.UserStore, hasher *auth.PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Signup registers a new account. The plaintext password is hashed before it
// touches the store; a duplicate username surfaces as
// repositories.ErrDuplicateUsername.
func (s *AuthService) Signup(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := models.ValidateStruct(creds); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     creds.Username,
		Email:        creds.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the user on success. Every
// attempt goes through the hash comparison; there is no plaintext path.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ResolveIdentity maps a resolved session back to a full user record. A
// session naming a user that no longer exists is Unauthorized, not a server
// error: it is indistinguishable from a forged token.
func (s *AuthService) ResolveIdentity(ctx context.Context, identity auth.Identity) (*models.User, error) {
	user, err := s.users.FindByID(ctx, identity.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
