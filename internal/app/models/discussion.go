package models

import "time"

// DiscussionThread is a course-scoped conversation starter. Threads,
// posts and replies allow owner edits: the creator may update or delete
// their own content regardless of viewer role.
type DiscussionThread struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Posts []*DiscussionPost `json:"posts,omitempty"`
}

// DiscussionPost is a message inside a thread.
type DiscussionPost struct {
	ID        int64     `json:"id" db:"id"`
	ThreadID  int64     `json:"threadId" db:"thread_id"`
	Content   string    `json:"content" db:"content"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Replies []*DiscussionReply `json:"replies,omitempty"`
}

// DiscussionReply is a response to a post.
type DiscussionReply struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	Content   string    `json:"content" db:"content"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
