package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
}

// UpdateEventRequest represents event update data
type UpdateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
}

// EventResponse represents an event with optional attendees
type EventResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`

	Students []UserResponse `json:"students,omitempty"`
}

// NewEventResponse converts an event model.
func NewEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		CourseID:    e.CourseID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
	if len(e.Students) > 0 {
		resp.Students = NewUserResponses(e.Students)
	}
	return resp
}
