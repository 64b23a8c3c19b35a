package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// CreateAssignmentRequest represents assignment creation data
type CreateAssignmentRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// UpdateAssignmentRequest represents assignment update data
type UpdateAssignmentRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// AssignmentResponse represents assignment information
type AssignmentResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewAssignmentResponse converts an assignment model.
func NewAssignmentResponse(a *models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		CourseID:    a.CourseID,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		CreatedAt:   a.CreatedAt,
	}
}

// SubmissionResponse represents an assignment submission
type SubmissionResponse struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignmentId"`
	StudentID    int64     `json:"studentId"`
	FileURL      *string   `json:"fileUrl,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// NewSubmissionResponse converts a submission model.
func NewSubmissionResponse(s *models.AssignmentSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		StudentID:    s.StudentID,
		FileURL:      s.FileURL,
		SubmittedAt:  s.SubmittedAt,
	}
}

// CreateAnnouncementRequest represents announcement creation data
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Message string `json:"message" binding:"required"`
}

// AnnouncementResponse represents a course announcement
type AnnouncementResponse struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAnnouncementResponse converts an announcement model.
func NewAnnouncementResponse(a *models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		CourseID:  a.CourseID,
		Title:     a.Title,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}
}
