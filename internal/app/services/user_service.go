package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/repositories"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
	pkgauth "github.com/doruk/eduhub/internal/pkg/auth"
)

// UserService defines the interface for user administration
type UserService interface {
	GetUsers(ctx context.Context, actorID int64, filter *dto.UserFilterRequest) (*dto.UserListResponse, error)
	GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, actorID, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	DeleteUser(ctx context.Context, actorID, id int64) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo     *repositories.UserRepository
	tokenRepo    *repositories.TokenRepository
	authzService *auth.AuthorizationService
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	authzService *auth.AuthorizationService,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		authzService: authzService,
	}
}

// GetUsers lists accounts, optionally filtered by role. Admin only.
func (s *userServiceImpl) GetUsers(ctx context.Context, actorID int64, filter *dto.UserFilterRequest) (*dto.UserListResponse, error) {
	if _, err := s.authzService.RequireRole(ctx, actorID, models.RoleAdmin); err != nil {
		return nil, err
	}

	var role *models.Role
	if filter.Role != nil && *filter.Role != "" {
		r := models.Role(*filter.Role)
		role = &r
	}

	users, err := s.userRepo.ListUsers(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	return &dto.UserListResponse{Users: dto.NewUserResponses(users)}, nil
}

// GetUserByID retrieves a single account.
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateUser updates account fields. Callers may update themselves;
// admins may update anyone. Role is never updatable.
func (s *userServiceImpl) UpdateUser(ctx context.Context, actorID, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actorID != id {
		if _, err := s.authzService.RequireRole(ctx, actorID, models.RoleAdmin); err != nil {
			if errors.Is(err, apperrors.ErrRoleNotAllowed) {
				return nil, apperrors.ErrPermissionDenied
			}
			return nil, err
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every outstanding refresh token.
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !pkgauth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := pkgauth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("error revoking tokens: %w", err)
	}
	return nil
}

// DeleteUser removes an account. Admin only.
func (s *userServiceImpl) DeleteUser(ctx context.Context, actorID, id int64) error {
	if _, err := s.authzService.RequireRole(ctx, actorID, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
		return fmt.Errorf("error revoking tokens: %w", err)
	}
	return s.userRepo.DeleteUser(ctx, id)
}
