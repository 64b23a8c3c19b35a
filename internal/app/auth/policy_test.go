package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doruk/eduhub/internal/app/models"
)

func teacherOf(courseIDs ...int64) Actor {
	taught := make(map[int64]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		taught[id] = struct{}{}
	}
	return Actor{ID: 10, Role: models.RoleTeacher, Authenticated: true, TaughtCourses: taught}
}

func studentOf(courseIDs ...int64) Actor {
	enrolled := make(map[int64]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		enrolled[id] = struct{}{}
	}
	return Actor{ID: 20, Role: models.RoleStudent, Authenticated: true, EnrolledCourses: enrolled}
}

func TestCanAccess(t *testing.T) {
	admin := Actor{ID: 1, Role: models.RoleAdmin, Authenticated: true}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		res    Resource
		want   bool
	}{
		{
			name:   "unauthenticated actor is denied everything",
			actor:  Actor{},
			action: ActionList,
			res:    Resource{CourseID: 1},
			want:   false,
		},
		{
			name:   "admin may do anything",
			actor:  admin,
			action: ActionDestroy,
			res:    Resource{CourseID: 1},
			want:   true,
		},
		{
			name:   "admin override beats ownership",
			actor:  admin,
			action: ActionUpdate,
			res:    Resource{CourseID: 1, OwnerID: 99, OwnerEditable: true},
			want:   true,
		},
		{
			name:   "teacher may read in a taught course",
			actor:  teacherOf(1),
			action: ActionRetrieve,
			res:    Resource{CourseID: 1},
			want:   true,
		},
		{
			name:   "teacher may create in a taught course",
			actor:  teacherOf(1),
			action: ActionCreate,
			res:    Resource{CourseID: 1},
			want:   true,
		},
		{
			name:   "teacher is denied in a course not taught",
			actor:  teacherOf(1),
			action: ActionUpdate,
			res:    Resource{CourseID: 2},
			want:   false,
		},
		{
			name:   "student may list in an enrolled course",
			actor:  studentOf(1),
			action: ActionList,
			res:    Resource{CourseID: 1},
			want:   true,
		},
		{
			name:   "student may retrieve in an enrolled course",
			actor:  studentOf(1),
			action: ActionRetrieve,
			res:    Resource{CourseID: 1},
			want:   true,
		},
		{
			name:   "student is denied reads outside enrollment",
			actor:  studentOf(1),
			action: ActionList,
			res:    Resource{CourseID: 2},
			want:   false,
		},
		{
			name:   "student may create a self submission when enrolled",
			actor:  studentOf(1),
			action: ActionCreate,
			res:    Resource{CourseID: 1, OwnerID: 20, SelfSubmission: true},
			want:   true,
		},
		{
			name:   "student may not create non-submission resources",
			actor:  studentOf(1),
			action: ActionCreate,
			res:    Resource{CourseID: 1},
			want:   false,
		},
		{
			name:   "student may not create submissions outside enrollment",
			actor:  studentOf(1),
			action: ActionCreate,
			res:    Resource{CourseID: 2, OwnerID: 20, SelfSubmission: true},
			want:   false,
		},
		{
			name:   "student may not update course content",
			actor:  studentOf(1),
			action: ActionUpdate,
			res:    Resource{CourseID: 1},
			want:   false,
		},
		{
			name:   "owner may update owner-editable content",
			actor:  studentOf(1),
			action: ActionUpdate,
			res:    Resource{CourseID: 1, OwnerID: 20, OwnerEditable: true},
			want:   true,
		},
		{
			name:   "owner may destroy owner-editable content",
			actor:  studentOf(1),
			action: ActionDestroy,
			res:    Resource{CourseID: 1, OwnerID: 20, OwnerEditable: true},
			want:   true,
		},
		{
			name:   "non-owner may not update owner-editable content",
			actor:  studentOf(1),
			action: ActionUpdate,
			res:    Resource{CourseID: 1, OwnerID: 99, OwnerEditable: true},
			want:   false,
		},
		{
			name:   "teacher may not edit another member's owner-editable content",
			actor:  teacherOf(1),
			action: ActionDestroy,
			res:    Resource{CourseID: 1, OwnerID: 99, OwnerEditable: true},
			want:   false,
		},
		{
			name:   "owner-editable clause does not grant reads",
			actor:  Actor{ID: 20, Role: models.RoleStudent, Authenticated: true},
			action: ActionRetrieve,
			res:    Resource{CourseID: 1, OwnerID: 20, OwnerEditable: true},
			want:   false,
		},
		{
			name:   "unknown role is denied",
			actor:  Actor{ID: 5, Role: models.Role("ghost"), Authenticated: true},
			action: ActionList,
			res:    Resource{CourseID: 1},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.actor, tt.action, tt.res))
		})
	}
}

func TestActorMembershipHelpers(t *testing.T) {
	actor := Actor{
		TaughtCourses:   map[int64]struct{}{1: {}},
		EnrolledCourses: map[int64]struct{}{2: {}},
	}

	assert.True(t, actor.Teaches(1))
	assert.False(t, actor.Teaches(2))
	assert.True(t, actor.EnrolledIn(2))
	assert.False(t, actor.EnrolledIn(1))

	var zero Actor
	assert.False(t, zero.Teaches(1))
	assert.False(t, zero.EnrolledIn(1))
}
