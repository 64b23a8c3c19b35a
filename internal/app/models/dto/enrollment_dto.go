package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// EnrollRequest represents a student's enrollment request body
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// EnrollmentFilterRequest represents enrollment list filtering
type EnrollmentFilterRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// EnrollmentResponse represents an enrollment request
type EnrollmentResponse struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	CourseID    int64     `json:"courseId"`
	Status      string    `json:"status" example:"pending"`
	RequestedAt time.Time `json:"requestedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Student *UserResponse   `json:"student,omitempty"`
	Course  *CourseResponse `json:"course,omitempty"`
}

// NewEnrollmentResponse converts an enrollment model into its response
// form.
func NewEnrollmentResponse(e *models.EnrollmentRequest) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:          e.ID,
		StudentID:   e.StudentID,
		CourseID:    e.CourseID,
		Status:      string(e.Status),
		RequestedAt: e.RequestedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.Student != nil {
		student := NewUserResponse(e.Student)
		resp.Student = &student
	}
	if e.Course != nil {
		course := NewCourseResponse(e.Course)
		resp.Course = &course
	}
	return resp
}

// NewEnrollmentResponses converts a slice of enrollment models.
func NewEnrollmentResponses(enrollments []*models.EnrollmentRequest) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		responses = append(responses, NewEnrollmentResponse(e))
	}
	return responses
}

// EnrollmentListResponse represents a list of enrollment requests
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}
