package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
)

// AuthService coordinates signup and signin. It is the only place tokens are issued.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Signup creates an account and returns a bearer token for it.
func (s *AuthService) Signup(ctx context.Context, email, password, role string) (string, error) {
	userRole, ok := domain.ParseUserRole(role)
	if !ok {
		return "", ErrInvalidRole
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	user := &domain.User{Email: email, PasswordHash: hash, Role: userRole}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}
	return s.tokens.CreateToken(user.ID, user.Email, user.Role)
}

// Signin verifies credentials and returns a bearer token.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotRegistered
		}
		return "", err
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return "", ErrWrongPassword
	}
	return s.tokens.CreateToken(user.ID, user.Email, user.Role)
}
