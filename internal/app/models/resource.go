package models

import "time"

// Resource is a stored file attached to a course.
type Resource struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	FileURL    string    `json:"fileUrl" db:"file_url"`
	Category   string    `json:"category" db:"category"`
	Tags       string    `json:"tags" db:"tags"`
	UploadedBy int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
