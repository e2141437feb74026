package identity

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials hides whether the username or the password was wrong
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")

// AuthService handles registration, login and session lifecycle
type AuthService struct {
	users    identity.UserRepository
	sessions auth.SessionStore
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users identity.UserRepository, sessions auth.SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a new customer account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	user, err := identity.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if existing, err := s.users.FindByUsername(ctx, user.Username); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing, err := s.users.FindByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		// The unique index is the final arbiter under concurrent registration
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Username or email is already registered")
		}
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)
	return ToUserResponse(user), nil
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, *UserResponse, error) {
	login := strings.TrimSpace(req.Username)

	user, err := s.users.FindByUsername(ctx, login)
	if errors.Is(err, shared.ErrNotFound) && strings.Contains(login, "@") {
		user, err = s.users.FindByEmail(ctx, strings.ToLower(login))
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive {
		return "", nil, shared.NewDomainError("UNAUTHORIZED", "Account is deactivated")
	}
	if !user.VerifyPassword(req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to create session", zap.Error(err))
		return "", nil, shared.ErrInternal
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return token, ToUserResponse(user), nil
}

// Logout destroys the session for the given token. Unknown tokens are a
// no-op so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// CurrentUser returns the account behind a principal
func (s *AuthService) CurrentUser(ctx context.Context, principal identity.Principal) (*UserResponse, error) {
	if !principal.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}
