package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// UserService handles profile management. Every operation takes the caller's
// principal; non-admins can only touch their own account.
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Get returns a user visible to the caller
func (s *UserService) Get(ctx context.Context, principal identity.Principal, id uuid.UUID) (*UserResponse, error) {
	if !principal.CanAccess(id) {
		return nil, shared.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// UpdateProfile changes username and/or email on an account
func (s *UserService) UpdateProfile(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	if !principal.CanAccess(id) {
		return nil, shared.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.Username, req.Email); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ChangePassword verifies the current password and sets a new one
func (s *UserService) ChangePassword(ctx context.Context, principal identity.Principal, id uuid.UUID, req ChangePasswordRequest) error {
	if !principal.CanAccess(id) {
		return shared.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("UNAUTHORIZED", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// Deactivate soft-deletes an account
func (s *UserService) Deactivate(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	if !principal.CanAccess(id) {
		return shared.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Deactivate()
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user deactivated", zap.String("user_id", user.ID.String()))
	return nil
}
