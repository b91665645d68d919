package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/hilthontt/roomly/infrastructure/security"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = apperror.Conflict("a user with this email already exists")
	ErrInvalidCredentials = apperror.Unauthenticated("invalid email or password")
	ErrInvalidToken       = apperror.Unauthenticated("invalid or expired token")
	ErrUserNotFound       = apperror.NotFound("user not found")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *model.User
	Token string
}

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	// Authenticate resolves a bearer token to the user id it was issued for.
	Authenticate(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, userID string) (*model.User, error)
}

type authUseCase struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens security.TokenManager
	logger *logger.Logger
}

func NewAuthUseCase(
	users repository.UserRepository,
	hasher security.PasswordHasher,
	tokens security.TokenManager,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *authUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		uc.logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Info("user registered", zap.String("userID", user.ID))
	return uc.issue(user)
}

func (uc *authUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := uc.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		uc.logger.Debug("password mismatch", zap.String("userID", user.ID))
		return nil, ErrInvalidCredentials
	}

	return uc.issue(user)
}

func (uc *authUseCase) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := uc.tokens.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (uc *authUseCase) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (uc *authUseCase) issue(user *model.User) (*AuthResult, error) {
	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
