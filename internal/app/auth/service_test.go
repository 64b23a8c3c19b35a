package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

type fakeUserGetter struct {
	users map[int64]*models.User
}

func (f *fakeUserGetter) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeMembershipLister struct {
	taught   map[int64][]int64
	enrolled map[int64][]int64
}

func (f *fakeMembershipLister) GetTaughtCourseIDs(ctx context.Context, userID int64) ([]int64, error) {
	return f.taught[userID], nil
}

func (f *fakeMembershipLister) GetEnrolledCourseIDs(ctx context.Context, userID int64) ([]int64, error) {
	return f.enrolled[userID], nil
}

func newTestAuthz() *AuthorizationService {
	users := &fakeUserGetter{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleAdmin},
		2: {ID: 2, Role: models.RoleTeacher},
		3: {ID: 3, Role: models.RoleStudent},
	}}
	memberships := &fakeMembershipLister{
		taught:   map[int64][]int64{2: {100, 101}},
		enrolled: map[int64][]int64{3: {100}},
	}
	return NewAuthorizationService(users, memberships)
}

func TestResolveActor(t *testing.T) {
	svc := newTestAuthz()
	ctx := context.Background()

	t.Run("teacher gets taught set", func(t *testing.T) {
		actor, err := svc.ResolveActor(ctx, 2)
		require.NoError(t, err)
		assert.True(t, actor.Authenticated)
		assert.Equal(t, models.RoleTeacher, actor.Role)
		assert.True(t, actor.Teaches(100))
		assert.True(t, actor.Teaches(101))
		assert.False(t, actor.EnrolledIn(100))
	})

	t.Run("student gets enrolled set", func(t *testing.T) {
		actor, err := svc.ResolveActor(ctx, 3)
		require.NoError(t, err)
		assert.True(t, actor.EnrolledIn(100))
		assert.False(t, actor.EnrolledIn(101))
		assert.False(t, actor.Teaches(100))
	})

	t.Run("admin needs no membership sets", func(t *testing.T) {
		actor, err := svc.ResolveActor(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, actor.Role)
		assert.Empty(t, actor.TaughtCourses)
		assert.Empty(t, actor.EnrolledCourses)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ResolveActor(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestAuthorize(t *testing.T) {
	svc := newTestAuthz()
	ctx := context.Background()

	t.Run("allows within policy", func(t *testing.T) {
		err := svc.Authorize(ctx, 2, ActionCreate, Resource{CourseID: 100})
		assert.NoError(t, err)
	})

	t.Run("denies outside policy", func(t *testing.T) {
		err := svc.Authorize(ctx, 3, ActionCreate, Resource{CourseID: 100})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("student submission create is allowed", func(t *testing.T) {
		err := svc.Authorize(ctx, 3, ActionCreate, Resource{CourseID: 100, OwnerID: 3, SelfSubmission: true})
		assert.NoError(t, err)
	})
}

func TestRequireRole(t *testing.T) {
	svc := newTestAuthz()
	ctx := context.Background()

	t.Run("matching role returns user", func(t *testing.T) {
		user, err := svc.RequireRole(ctx, 1, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("mismatched role", func(t *testing.T) {
		_, err := svc.RequireRole(ctx, 3, models.RoleAdmin)
		assert.ErrorIs(t, err, apperrors.ErrRoleNotAllowed)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.RequireRole(ctx, 99, models.RoleAdmin)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
