package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
	"github.com/doruk/eduhub/internal/pkg/logger"
)

// UserGetter loads users by id.
type UserGetter interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// MembershipLister loads the course relations of a user.
type MembershipLister interface {
	GetTaughtCourseIDs(ctx context.Context, userID int64) ([]int64, error)
	GetEnrolledCourseIDs(ctx context.Context, userID int64) ([]int64, error)
}

// AuthorizationService resolves an authenticated user into an Actor and
// applies the access policy against it.
type AuthorizationService struct {
	users       UserGetter
	memberships MembershipLister
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users UserGetter, memberships MembershipLister) *AuthorizationService {
	return &AuthorizationService{
		users:       users,
		memberships: memberships,
	}
}

// ResolveActor loads the user and its course relations. Teachers get
// their taught set, students their enrolled set; admins need neither.
func (s *AuthorizationService) ResolveActor(ctx context.Context, userID int64) (Actor, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) || errors.Is(err, apperrors.ErrUserNotFound) {
			return Actor{}, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in ResolveActor")
		return Actor{}, fmt.Errorf("failed to resolve actor: %w", err)
	}
	if user == nil {
		return Actor{}, apperrors.ErrUserNotFound
	}

	actor := Actor{
		ID:            user.ID,
		Role:          user.Role,
		Authenticated: true,
	}

	switch user.Role {
	case models.RoleTeacher:
		ids, err := s.memberships.GetTaughtCourseIDs(ctx, userID)
		if err != nil {
			return Actor{}, fmt.Errorf("failed to load taught courses: %w", err)
		}
		actor.TaughtCourses = idSet(ids)
	case models.RoleStudent:
		ids, err := s.memberships.GetEnrolledCourseIDs(ctx, userID)
		if err != nil {
			return Actor{}, fmt.Errorf("failed to load enrolled courses: %w", err)
		}
		actor.EnrolledCourses = idSet(ids)
	}

	return actor, nil
}

// Authorize resolves the actor and applies the policy, translating a
// deny into ErrPermissionDenied.
func (s *AuthorizationService) Authorize(ctx context.Context, userID int64, action Action, res Resource) error {
	actor, err := s.ResolveActor(ctx, userID)
	if err != nil {
		return err
	}
	if !CanAccess(actor, action, res) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// RequireRole fails with ErrRoleNotAllowed unless the user holds the
// given role.
func (s *AuthorizationService) RequireRole(ctx context.Context, userID int64, role models.Role) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Role != role {
		return nil, apperrors.ErrRoleNotAllowed
	}
	return user, nil
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
