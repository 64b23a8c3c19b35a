package models

import "time"

// Forum is a course-scoped post. Anyone who can see the course can
// read it; only the owner (or an admin) can edit or delete it.
type Forum struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Comments []*Comment `json:"comments,omitempty"`
}

// Comment is a reply on a forum post.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	ForumID   int64     `json:"forumId" db:"forum_id"`
	Content   string    `json:"content" db:"content"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
