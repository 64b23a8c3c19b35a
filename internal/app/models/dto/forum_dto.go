package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// CreateForumRequest represents forum post creation data
type CreateForumRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// UpdateForumRequest represents forum post update data
type UpdateForumRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// ForumResponse represents a forum post
type ForumResponse struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`

	Comments []CommentResponse `json:"comments,omitempty"`
}

// NewForumResponse converts a forum model.
func NewForumResponse(f *models.Forum) ForumResponse {
	resp := ForumResponse{
		ID:        f.ID,
		CourseID:  f.CourseID,
		Title:     f.Title,
		Content:   f.Content,
		CreatedBy: f.CreatedBy,
		CreatedAt: f.CreatedAt,
	}
	for _, c := range f.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(c))
	}
	return resp
}

// CreateCommentRequest represents comment creation data
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateCommentRequest represents comment update data
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse represents a forum comment
type CommentResponse struct {
	ID        int64     `json:"id"`
	ForumID   int64     `json:"forumId"`
	Content   string    `json:"content"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCommentResponse converts a comment model.
func NewCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		ForumID:   c.ForumID,
		Content:   c.Content,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}
