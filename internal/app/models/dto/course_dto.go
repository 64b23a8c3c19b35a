package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// CourseFilterRequest represents course filtering parameters
type CourseFilterRequest struct {
	Search    string `form:"search"`
	TeacherID *int64 `form:"teacherId" binding:"omitempty,min=1"`
	StudentID *int64 `form:"studentId" binding:"omitempty,min=1"`
	Page      int    `form:"page,default=1" binding:"min=1"`
	PageSize  int    `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// CourseResponse represents course information
type CourseResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   *int64    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Teachers []UserResponse `json:"teachers,omitempty"`
	Students []UserResponse `json:"students,omitempty"`
}

// NewCourseResponse converts a course model into its response form.
func NewCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if len(c.Teachers) > 0 {
		resp.Teachers = NewUserResponses(c.Teachers)
	}
	if len(c.Students) > 0 {
		resp.Students = NewUserResponses(c.Students)
	}
	return resp
}

// CourseListResponse represents a paginated course list
type CourseListResponse struct {
	Courses        []CourseResponse `json:"courses"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}

// CourseMemberRequest identifies a user to add to or remove from a
// course membership list.
type CourseMemberRequest struct {
	UserID int64 `json:"userId" binding:"required,min=1"`
}

// ActivityLogResponse represents one course activity log entry
type ActivityLogResponse struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	UserID    int64     `json:"userId"`
	Action    string    `json:"action" example:"create"`
	Timestamp time.Time `json:"timestamp"`
}

// NewActivityLogResponses converts activity log models.
func NewActivityLogResponses(logs []*models.CourseActivityLog) []ActivityLogResponse {
	responses := make([]ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, ActivityLogResponse{
			ID:        l.ID,
			CourseID:  l.CourseID,
			UserID:    l.UserID,
			Action:    string(l.Action),
			Timestamp: l.Timestamp,
		})
	}
	return responses
}
