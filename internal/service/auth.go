package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasklist/tasklist-go/internal/crypto"
	"github.com/tasklist/tasklist-go/internal/model"
	"github.com/tasklist/tasklist-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already taken")
	ErrTokenMissing       = errors.New("missing session token")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore is the credential store used by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// AuthService handles registration, login and session token lifecycle.
type AuthService struct {
	repo      UserStore
	hasher    PasswordHasher
	revoked   *RevocationSet
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserStore, hasher PasswordHasher, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		revoked:   NewRevocationSet(expiry),
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account storing only the password hash.
func (s *AuthService) Register(ctx context.Context, req model.CredentialsRequest) (*model.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:    req.Email,
		AuthHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a session token bound to the email.
func (s *AuthService) Login(ctx context.Context, req model.CredentialsRequest) (string, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	match, err := s.hasher.Verify(req.Password, user.AuthHash)
	if err != nil {
		return "", fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return "", ErrInvalidCredentials
	}

	return crypto.GenerateToken(user.Email, s.jwtSecret, s.jwtExpiry)
}

// Logout revokes token. An empty token is accepted and ignored.
func (s *AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.revoked.Revoke(token)
}

// Authenticate resolves a session token to the stored user it identifies.
// The user is looked up by email on every call, so tokens of removed users
// stop working immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}
	if s.revoked.Contains(token) {
		return nil, ErrTokenRevoked
	}

	claims, err := crypto.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.repo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolving token owner: %w", err)
	}

	return user, nil
}
