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

// ResourceRepository handles database operations for course file
// resources.
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateResource inserts a resource record for an already stored file.
func (r *ResourceRepository) CreateResource(ctx context.Context, res *models.Resource) (int64, error) {
	query := `
		INSERT INTO resources (course_id, file_url, category, tags, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, res.CourseID, res.FileURL, res.Category, res.Tags, res.UploadedBy).
		Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating resource: %w", err)
	}
	return res.ID, nil
}

// GetResourceByID retrieves a resource by ID
func (r *ResourceRepository) GetResourceByID(ctx context.Context, id int64) (*models.Resource, error) {
	query := `
		SELECT id, course_id, file_url, category, tags, uploaded_by, created_at
		FROM resources
		WHERE id = $1
	`

	var res models.Resource
	err := r.db.QueryRow(ctx, query, id).
		Scan(&res.ID, &res.CourseID, &res.FileURL, &res.Category, &res.Tags, &res.UploadedBy, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving resource: %w", err)
	}
	return &res, nil
}

// ListResourcesByCourse retrieves a course's resources, optionally
// filtered by category, newest first.
func (r *ResourceRepository) ListResourcesByCourse(ctx context.Context, courseID int64, category string) ([]*models.Resource, error) {
	builder := r.sb.Select("id", "course_id", "file_url", "category", "tags", "uploaded_by", "created_at").
		From("resources").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at DESC")

	if category != "" {
		builder = builder.Where(squirrel.Eq{"category": category})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building resource list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		var res models.Resource
		err := rows.Scan(&res.ID, &res.CourseID, &res.FileURL, &res.Category, &res.Tags, &res.UploadedBy, &res.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning resource row: %w", err)
		}
		resources = append(resources, &res)
	}
	return resources, rows.Err()
}

// UpdateResource updates a resource's category and tags.
func (r *ResourceRepository) UpdateResource(ctx context.Context, res *models.Resource) error {
	query, args, err := r.sb.Update("resources").
		Set("category", res.Category).
		Set("tags", res.Tags).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building resource update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating resource: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseResourceNotFound
	}
	return nil
}

// DeleteResource deletes a resource record.
func (r *ResourceRepository) DeleteResource(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting resource: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseResourceNotFound
	}
	return nil
}
