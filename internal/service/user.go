// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cdmstr-kev/news-explorer-backend/internal/auth"
	"github.com/cdmstr-kev/news-explorer-backend/internal/model"
	"github.com/cdmstr-kev/news-explorer-backend/internal/repository"
	"github.com/cdmstr-kev/news-explorer-backend/internal/token"
)

// Service errors. Handlers map these onto the HTTP error taxonomy.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidID          = errors.New("invalid id")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore is the persistence contract the user service depends on.
// The default projections never include the password hash; only
// GetUserByEmailWithPassword loads it, for the credentials check.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmailWithPassword(ctx context.Context, email string) (*model.User, error)
}

// UserService handles account business logic.
type UserService struct {
	store  UserStore
	hasher *auth.Hasher
	tokens *token.Service
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, hasher *auth.Hasher, tokens *token.Service) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Email    string
	Password string
	Username string
}

// CreateUser registers a new account and mints a session token for it.
// Email is stored lowercased and the password only ever as a bcrypt hash.
// Duplicate emails surface as ErrEmailExists from the store's uniqueness
// signal; there is no pre-check, so concurrent signups cannot race past it.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, string, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           model.NewID(),
		Email:        model.NormalizeEmail(input.Email),
		PasswordHash: hash,
		Username:     input.Username,
		CreatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, "", ErrEmailExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, tok, nil
}

// Login verifies credentials and returns a fresh token.
// Unknown email and wrong password both fail with ErrInvalidCredentials so
// responses cannot be used to enumerate registered emails.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.store.GetUserByEmailWithPassword(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to compare password: %w", err)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return tok, nil
}

// GetCurrentUser fetches the authenticated user's profile, sans password.
// A malformed id is rejected here defensively even though upstream
// validation should have caught it.
func (s *UserService) GetCurrentUser(ctx context.Context, id string) (*model.User, error) {
	id = model.NormalizeID(id)
	if !model.IsValidID(id) {
		return nil, ErrInvalidID
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
