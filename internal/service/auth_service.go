package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

type authUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthService checks admin credentials. It issues no session or token.
type AuthService struct {
	users     authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	cost      int
}

// NewAuthService constructs the auth service.
func NewAuthService(users authUserRepository, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, validator: validate, logger: logger, cost: bcrypt.DefaultCost}
}

// Login succeeds only when the username exists and the password matches its hash.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrInvalidCredentials
		}
		return readError(err, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}

// EnsureDefaultUser inserts the seed account when no user has its username.
// It reports whether a user was created.
func (s *AuthService) EnsureDefaultUser(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, err
	}
	if err := s.users.Create(ctx, &models.User{Username: username, PasswordHash: string(hash)}); err != nil {
		return false, err
	}
	s.logger.Info("default user created", zap.String("username", username))
	return true, nil
}
