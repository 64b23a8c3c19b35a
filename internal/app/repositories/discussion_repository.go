package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

// DiscussionRepository handles database operations for discussion
// threads, posts and replies.
type DiscussionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDiscussionRepository creates a new DiscussionRepository
func NewDiscussionRepository(db *pgxpool.Pool) *DiscussionRepository {
	return &DiscussionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateThread inserts a discussion thread.
func (r *DiscussionRepository) CreateThread(ctx context.Context, t *models.DiscussionThread) (int64, error) {
	query := `
		INSERT INTO discussion_threads (course_id, title, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, t.CourseID, t.Title, t.CreatedBy).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating discussion thread: %w", err)
	}
	return t.ID, nil
}

// GetThreadByID retrieves a thread by ID
func (r *DiscussionRepository) GetThreadByID(ctx context.Context, id int64) (*models.DiscussionThread, error) {
	query := `SELECT id, course_id, title, created_by, created_at FROM discussion_threads WHERE id = $1`

	var t models.DiscussionThread
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.CourseID, &t.Title, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrThreadNotFound
		}
		return nil, fmt.Errorf("error retrieving discussion thread: %w", err)
	}
	return &t, nil
}

// ListThreadsByCourse retrieves a course's threads, newest first.
func (r *DiscussionRepository) ListThreadsByCourse(ctx context.Context, courseID int64) ([]*models.DiscussionThread, error) {
	query := `
		SELECT id, course_id, title, created_by, created_at
		FROM discussion_threads
		WHERE course_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing discussion threads: %w", err)
	}
	defer rows.Close()

	var threads []*models.DiscussionThread
	for rows.Next() {
		var t models.DiscussionThread
		err := rows.Scan(&t.ID, &t.CourseID, &t.Title, &t.CreatedBy, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning thread row: %w", err)
		}
		threads = append(threads, &t)
	}
	return threads, rows.Err()
}

// UpdateThread updates a thread's title.
func (r *DiscussionRepository) UpdateThread(ctx context.Context, t *models.DiscussionThread) error {
	query, args, err := r.sb.Update("discussion_threads").
		Set("title", t.Title).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building thread update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating discussion thread: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrThreadNotFound
	}
	return nil
}

// DeleteThread deletes a thread together with its posts and replies.
func (r *DiscussionRepository) DeleteThread(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM discussion_threads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting discussion thread: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrThreadNotFound
	}
	return nil
}

// CreatePost inserts a post into a thread.
func (r *DiscussionRepository) CreatePost(ctx context.Context, p *models.DiscussionPost) (int64, error) {
	query := `
		INSERT INTO discussion_posts (thread_id, content, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, p.ThreadID, p.Content, p.CreatedBy).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating discussion post: %w", err)
	}
	return p.ID, nil
}

// GetPostByID retrieves a post by ID
func (r *DiscussionRepository) GetPostByID(ctx context.Context, id int64) (*models.DiscussionPost, error) {
	query := `SELECT id, thread_id, content, created_by, created_at FROM discussion_posts WHERE id = $1`

	var p models.DiscussionPost
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.ThreadID, &p.Content, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving discussion post: %w", err)
	}
	return &p, nil
}

// ListPostsByThread retrieves a thread's posts in posting order.
func (r *DiscussionRepository) ListPostsByThread(ctx context.Context, threadID int64) ([]*models.DiscussionPost, error) {
	query := `
		SELECT id, thread_id, content, created_by, created_at
		FROM discussion_posts
		WHERE thread_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("error listing discussion posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.DiscussionPost
	for rows.Next() {
		var p models.DiscussionPost
		err := rows.Scan(&p.ID, &p.ThreadID, &p.Content, &p.CreatedBy, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

// UpdatePost updates a post's content.
func (r *DiscussionRepository) UpdatePost(ctx context.Context, p *models.DiscussionPost) error {
	query, args, err := r.sb.Update("discussion_posts").
		Set("content", p.Content).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building post update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating discussion post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post together with its replies.
func (r *DiscussionRepository) DeletePost(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM discussion_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting discussion post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// CreateReply inserts a reply to a post.
func (r *DiscussionRepository) CreateReply(ctx context.Context, reply *models.DiscussionReply) (int64, error) {
	query := `
		INSERT INTO discussion_replies (post_id, content, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, reply.PostID, reply.Content, reply.CreatedBy).
		Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating discussion reply: %w", err)
	}
	return reply.ID, nil
}

// GetReplyByID retrieves a reply by ID
func (r *DiscussionRepository) GetReplyByID(ctx context.Context, id int64) (*models.DiscussionReply, error) {
	query := `SELECT id, post_id, content, created_by, created_at FROM discussion_replies WHERE id = $1`

	var reply models.DiscussionReply
	err := r.db.QueryRow(ctx, query, id).
		Scan(&reply.ID, &reply.PostID, &reply.Content, &reply.CreatedBy, &reply.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving discussion reply: %w", err)
	}
	return &reply, nil
}

// ListRepliesByPost retrieves a post's replies in posting order.
func (r *DiscussionRepository) ListRepliesByPost(ctx context.Context, postID int64) ([]*models.DiscussionReply, error) {
	query := `
		SELECT id, post_id, content, created_by, created_at
		FROM discussion_replies
		WHERE post_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing discussion replies: %w", err)
	}
	defer rows.Close()

	var replies []*models.DiscussionReply
	for rows.Next() {
		var reply models.DiscussionReply
		err := rows.Scan(&reply.ID, &reply.PostID, &reply.Content, &reply.CreatedBy, &reply.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning reply row: %w", err)
		}
		replies = append(replies, &reply)
	}
	return replies, rows.Err()
}

// UpdateReply updates a reply's content.
func (r *DiscussionRepository) UpdateReply(ctx context.Context, reply *models.DiscussionReply) error {
	query, args, err := r.sb.Update("discussion_replies").
		Set("content", reply.Content).
		Where(squirrel.Eq{"id": reply.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building reply update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating discussion reply: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// DeleteReply deletes a reply.
func (r *DiscussionRepository) DeleteReply(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM discussion_replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting discussion reply: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}
