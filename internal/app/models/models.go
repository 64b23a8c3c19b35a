package models

// Role defines the user role type. A role is fixed when the user is
// created and never transitions afterwards.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// CourseAction identifies a mutation recorded in the course activity log.
type CourseAction string

const (
	CourseActionCreate CourseAction = "create"
	CourseActionUpdate CourseAction = "update"
	CourseActionDelete CourseAction = "delete"
)

// QuestionType identifies the kind of quiz question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
)
