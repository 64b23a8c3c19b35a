package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// CreateThreadRequest represents discussion thread creation data
type CreateThreadRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// UpdateThreadRequest represents discussion thread update data
type UpdateThreadRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// ThreadResponse represents a discussion thread
type ThreadResponse struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	Title     string    `json:"title"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewThreadResponse converts a thread model.
func NewThreadResponse(t *models.DiscussionThread) ThreadResponse {
	return ThreadResponse{
		ID:        t.ID,
		CourseID:  t.CourseID,
		Title:     t.Title,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
	}
}

// CreatePostRequest represents discussion post creation data
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdatePostRequest represents discussion post update data
type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostResponse represents a discussion post
type PostResponse struct {
	ID        int64     `json:"id"`
	ThreadID  int64     `json:"threadId"`
	Content   string    `json:"content"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPostResponse converts a post model.
func NewPostResponse(p *models.DiscussionPost) PostResponse {
	return PostResponse{
		ID:        p.ID,
		ThreadID:  p.ThreadID,
		Content:   p.Content,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
	}
}

// CreateReplyRequest represents discussion reply creation data
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateReplyRequest represents discussion reply update data
type UpdateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReplyResponse represents a discussion reply
type ReplyResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	Content   string    `json:"content"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReplyResponse converts a reply model.
func NewReplyResponse(r *models.DiscussionReply) ReplyResponse {
	return ReplyResponse{
		ID:        r.ID,
		PostID:    r.PostID,
		Content:   r.Content,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}
