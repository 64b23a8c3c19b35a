package models

import "time"

// EnrollmentStatus is the state of an enrollment request.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s EnrollmentStatus) Terminal() bool {
	return s == EnrollmentApproved || s == EnrollmentRejected
}

// CanTransitionTo reports whether the state machine allows moving from s
// to next. Only pending to approved and pending to rejected are legal.
func (s EnrollmentStatus) CanTransitionTo(next EnrollmentStatus) bool {
	if s != EnrollmentPending {
		return false
	}
	return next == EnrollmentApproved || next == EnrollmentRejected
}

// EnrollmentRequest gates how a student joins a course's student set.
// It references its student and course by identifier only and owns
// neither. At most one pending request exists per (student, course),
// enforced by get-or-create semantics.
type EnrollmentRequest struct {
	ID          int64            `json:"id" db:"id"`
	StudentID   int64            `json:"studentId" db:"student_id"`
	CourseID    int64            `json:"courseId" db:"course_id"`
	Status      EnrollmentStatus `json:"status" db:"status"`
	RequestedAt time.Time        `json:"requestedAt" db:"requested_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *User   `json:"student,omitempty"`
	Course  *Course `json:"course,omitempty"`
}
