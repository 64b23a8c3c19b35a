package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// CreateResourceRequest carries metadata accompanying a file upload.
// The file itself arrives as multipart form data.
type CreateResourceRequest struct {
	Category string `form:"category" binding:"required,max=100"`
	Tags     string `form:"tags"`
}

// UpdateResourceRequest represents resource metadata update data
type UpdateResourceRequest struct {
	Category string `json:"category" binding:"required,max=100"`
	Tags     string `json:"tags"`
}

// ResourceFilterRequest represents resource list filtering
type ResourceFilterRequest struct {
	Category string `form:"category"`
}

// ResourceResponse represents a course file resource
type ResourceResponse struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"courseId"`
	FileURL    string    `json:"fileUrl"`
	Category   string    `json:"category"`
	Tags       string    `json:"tags"`
	UploadedBy int64     `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewResourceResponse converts a resource model.
func NewResourceResponse(r *models.Resource) ResourceResponse {
	return ResourceResponse{
		ID:         r.ID,
		CourseID:   r.CourseID,
		FileURL:    r.FileURL,
		Category:   r.Category,
		Tags:       r.Tags,
		UploadedBy: r.UploadedBy,
		CreatedAt:  r.CreatedAt,
	}
}
