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

// ForumRepository handles database operations for forum posts and
// their comments.
type ForumRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewForumRepository creates a new ForumRepository
func NewForumRepository(db *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateForum inserts a forum post.
func (r *ForumRepository) CreateForum(ctx context.Context, f *models.Forum) (int64, error) {
	query := `
		INSERT INTO forums (course_id, title, content, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, f.CourseID, f.Title, f.Content, f.CreatedBy).
		Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating forum post: %w", err)
	}
	return f.ID, nil
}

// GetForumByID retrieves a forum post by ID
func (r *ForumRepository) GetForumByID(ctx context.Context, id int64) (*models.Forum, error) {
	query := `SELECT id, course_id, title, content, created_by, created_at FROM forums WHERE id = $1`

	var f models.Forum
	err := r.db.QueryRow(ctx, query, id).
		Scan(&f.ID, &f.CourseID, &f.Title, &f.Content, &f.CreatedBy, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumNotFound
		}
		return nil, fmt.Errorf("error retrieving forum post: %w", err)
	}
	return &f, nil
}

// ListForumsByCourse retrieves a course's forum posts, newest first.
func (r *ForumRepository) ListForumsByCourse(ctx context.Context, courseID int64) ([]*models.Forum, error) {
	query := `
		SELECT id, course_id, title, content, created_by, created_at
		FROM forums
		WHERE course_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing forum posts: %w", err)
	}
	defer rows.Close()

	var forums []*models.Forum
	for rows.Next() {
		var f models.Forum
		err := rows.Scan(&f.ID, &f.CourseID, &f.Title, &f.Content, &f.CreatedBy, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning forum row: %w", err)
		}
		forums = append(forums, &f)
	}
	return forums, rows.Err()
}

// UpdateForum updates a forum post's title and content.
func (r *ForumRepository) UpdateForum(ctx context.Context, f *models.Forum) error {
	query, args, err := r.sb.Update("forums").
		Set("title", f.Title).
		Set("content", f.Content).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building forum update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating forum post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumNotFound
	}
	return nil
}

// DeleteForum deletes a forum post together with its comments.
func (r *ForumRepository) DeleteForum(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM forums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting forum post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumNotFound
	}
	return nil
}

// CreateComment inserts a comment on a forum post.
func (r *ForumRepository) CreateComment(ctx context.Context, c *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (forum_id, content, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, c.ForumID, c.Content, c.CreatedBy).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}
	return c.ID, nil
}

// GetCommentByID retrieves a comment by ID
func (r *ForumRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT id, forum_id, content, created_by, created_at FROM comments WHERE id = $1`

	var c models.Comment
	err := r.db.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.ForumID, &c.Content, &c.CreatedBy, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	return &c, nil
}

// ListCommentsByForum retrieves a forum post's comments in posting
// order.
func (r *ForumRepository) ListCommentsByForum(ctx context.Context, forumID int64) ([]*models.Comment, error) {
	query := `
		SELECT id, forum_id, content, created_by, created_at
		FROM comments
		WHERE forum_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, forumID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.ForumID, &c.Content, &c.CreatedBy, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// UpdateComment updates a comment's content.
func (r *ForumRepository) UpdateComment(ctx context.Context, c *models.Comment) error {
	query, args, err := r.sb.Update("comments").
		Set("content", c.Content).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building comment update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteComment deletes a comment.
func (r *ForumRepository) DeleteComment(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
