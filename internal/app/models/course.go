package models

import "time"

// Course represents a course with its teacher and student membership sets.
// Membership invariant: members of Teachers must have role=teacher and
// members of Students must have role=student. The registry enforces this
// at write time; the database does not.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedBy   *int64    `json:"createdBy,omitempty" db:"created_by"` // Nullable
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Teachers []*User `json:"teachers,omitempty"`
	Students []*User `json:"students,omitempty"`
}

// CourseActivityLog is an append-only audit record of course mutations.
// Rows are created on every course create/update/delete and are never
// updated or deleted by normal flow.
type CourseActivityLog struct {
	ID        int64        `json:"id" db:"id"`
	CourseID  int64        `json:"courseId" db:"course_id"`
	UserID    int64        `json:"userId" db:"user_id"`
	Action    CourseAction `json:"action" db:"action"`
	Timestamp time.Time    `json:"timestamp" db:"timestamp"`
}
