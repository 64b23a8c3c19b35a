package models

import "time"

// Assignment is a course-scoped piece of work with a due date.
type Assignment struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// AssignmentSubmission is a student's uploaded answer to an assignment.
// One submission per (student, assignment).
type AssignmentSubmission struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignmentId" db:"assignment_id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	FileURL      *string   `json:"fileUrl,omitempty" db:"file_url"` // Nullable
	SubmittedAt  time.Time `json:"submittedAt" db:"submitted_at"`

	// Relations (populated when needed)
	Student    *User       `json:"student,omitempty"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

// Announcement is a course-scoped notice visible to enrolled students.
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
