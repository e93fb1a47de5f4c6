package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"menshealth-backend/internal/shared/auth"
	"menshealth-backend/internal/shared/metrics"
	"menshealth-backend/internal/shared/telemetry"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(pw, storedHash string) bool
}

type Service struct {
	Repo   Repo
	Tokens TokenIssuer
	Hasher PasswordHasher
	Now    func() time.Time
}

func NewService(repo Repo, tokens TokenIssuer, hasher PasswordHasher) *Service {
	return &Service{Repo: repo, Tokens: tokens, Hasher: hasher, Now: time.Now}
}

// CreateInput carries the fields for a new account.
type CreateInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	Role     string `json:"role" validate:"omitempty,oneof=doctor staff admin"`
}

// Session is a signed token together with the account it belongs to.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new account with a hashed password.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = RoleDoctor
	}
	if email == "" || name == "" || !ValidRole(role) {
		return User{}, ErrInvalidInput
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return User{}, err
	}
	now := s.now()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	telemetry.Info("user.created", map[string]any{"user_id": user.ID, "role": user.Role})
	return user, nil
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.IncLoginFailures()
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if !s.Hasher.Verify(password, user.PasswordHash) {
		metrics.IncLoginFailures()
		return Session{}, ErrInvalidCredentials
	}
	return s.SessionFor(user)
}

// LoginByEmail issues a session for an already-verified email (external sign-in).
func (s *Service) LoginByEmail(ctx context.Context, email string) (Session, error) {
	user, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return Session{}, err
	}
	return s.SessionFor(user)
}

// SessionFor signs a token for user.
func (s *Service) SessionFor(user User) (Session, error) {
	token, err := s.Tokens.Issue(auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
