package auth

import (
	"github.com/doruk/eduhub/internal/app/models"
)

// Action is a coarse API operation checked against the access policy.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDestroy  Action = "destroy"
)

// Actor is the authenticated caller together with its course relations.
// The zero value is an unauthenticated actor and is denied everything.
type Actor struct {
	ID            int64
	Role          models.Role
	Authenticated bool

	// Course ids the actor teaches / is enrolled in.
	TaughtCourses   map[int64]struct{}
	EnrolledCourses map[int64]struct{}
}

// Teaches reports whether the actor teaches the given course.
func (a Actor) Teaches(courseID int64) bool {
	_, ok := a.TaughtCourses[courseID]
	return ok
}

// EnrolledIn reports whether the actor is enrolled in the given course.
func (a Actor) EnrolledIn(courseID int64) bool {
	_, ok := a.EnrolledCourses[courseID]
	return ok
}

// Resource describes the course scope and ownership of the object being
// accessed, plus which capabilities the resource type grants.
type Resource struct {
	CourseID int64
	OwnerID  int64

	// OwnerEditable marks resource types (discussion threads, posts,
	// replies, forum comments) whose mutation is restricted to the
	// owner, viewer role irrelevant.
	OwnerEditable bool

	// SelfSubmission marks resource types (assignment and quiz
	// submissions, discussion content, forum comments) that enrolled
	// students may create for themselves.
	SelfSubmission bool
}

// roleRule decides access for one role once the admin override and the
// owner-edit clause have been evaluated.
type roleRule func(actor Actor, action Action, res Resource) bool

// rules is the single dispatch table shared by every resource type.
var rules = map[models.Role]roleRule{
	models.RoleTeacher: teacherRule,
	models.RoleStudent: studentRule,
}

// CanAccess is the pure access predicate. It never errors: callers
// translate false into an authorization failure response. Evaluation
// order: unauthenticated deny, admin override, owner-edit clause, then
// the role rule; default deny.
func CanAccess(actor Actor, action Action, res Resource) bool {
	if !actor.Authenticated {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}

	if res.OwnerEditable && (action == ActionUpdate || action == ActionDestroy) {
		return actor.ID == res.OwnerID
	}

	rule, ok := rules[actor.Role]
	if !ok {
		return false
	}
	return rule(actor, action, res)
}

// teacherRule grants every action on resources scoped to a course the
// actor teaches.
func teacherRule(actor Actor, action Action, res Resource) bool {
	switch action {
	case ActionList, ActionRetrieve, ActionCreate, ActionUpdate, ActionDestroy:
		return actor.Teaches(res.CourseID)
	}
	return false
}

// studentRule grants reads on enrolled courses, creation of self-scoped
// submission resources, and nothing else.
func studentRule(actor Actor, action Action, res Resource) bool {
	switch action {
	case ActionList, ActionRetrieve:
		return actor.EnrolledIn(res.CourseID)
	case ActionCreate:
		return res.SelfSubmission && actor.EnrolledIn(res.CourseID)
	}
	return false
}
