package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/household-budget/internal/auth/domain"
)

// ErrInvalidCredentials signals a failed login attempt. The reason (unknown
// email vs wrong password) is deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles registration, login and admin seeding.
type AuthService struct {
	users  domain.UserRepository
	tokens TokenConfig
	logger *zap.Logger
}

func NewAuthService(users domain.UserRepository, tokens TokenConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a user with the default role. The email must be unused.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%s: %w", email, domain.ErrEmailTaken)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("looking up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("creating user failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies the credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("looking up email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("failed login attempt", zap.String("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(user, s.tokens)
	if err != nil {
		s.logger.Error("issuing token failed", zap.String("user_id", user.ID), zap.Error(err))
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return token, nil
}

// VerifyToken parses an access token and resolves the caller's identity.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	return ParseToken(tokenString, s.tokens)
}

// EnsureAdmin seeds the configured admin user at startup if it does not
// exist yet. A blank email disables seeding.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("looking up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	s.logger.Info("admin user seeded", zap.String("user_id", admin.ID))
	return nil
}
