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

// EnrollmentRepository handles database operations for enrollment
// requests.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const enrollmentColumns = "id, student_id, course_id, status, requested_at, updated_at"

func scanEnrollment(row pgx.Row) (*models.EnrollmentRequest, error) {
	var req models.EnrollmentRequest
	err := row.Scan(
		&req.ID,
		&req.StudentID,
		&req.CourseID,
		&req.Status,
		&req.RequestedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a pending enrollment request.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, courseID int64) (*models.EnrollmentRequest, error) {
	query := `
		INSERT INTO enrollment_requests (student_id, course_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING ` + enrollmentColumns

	req, err := scanEnrollment(r.db.QueryRow(ctx, query, studentID, courseID))
	if err != nil {
		return nil, fmt.Errorf("error creating enrollment request: %w", err)
	}
	return req, nil
}

// GetByID retrieves an enrollment request by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.EnrollmentRequest, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollment_requests WHERE id = $1`

	req, err := scanEnrollment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment request: %w", err)
	}
	return req, nil
}

// GetByIDForUpdate retrieves an enrollment request inside a transaction
// with a row lock, so concurrent approvals serialize on the row.
func (r *EnrollmentRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.EnrollmentRequest, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollment_requests WHERE id = $1 FOR UPDATE`

	req, err := scanEnrollment(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment request: %w", err)
	}
	return req, nil
}

// GetPending retrieves the open request for (student, course), if any.
func (r *EnrollmentRepository) GetPending(ctx context.Context, studentID, courseID int64) (*models.EnrollmentRequest, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollment_requests
		WHERE student_id = $1 AND course_id = $2 AND status = 'pending'
		ORDER BY requested_at DESC
		LIMIT 1
	`

	req, err := scanEnrollment(r.db.QueryRow(ctx, query, studentID, courseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving pending enrollment request: %w", err)
	}
	return req, nil
}

// HasRejected reports whether a rejected request exists for the pair.
// Used by the resubmission policy.
func (r *EnrollmentRepository) HasRejected(ctx context.Context, studentID, courseID int64) (bool, error) {
	query := `
		SELECT 1 FROM enrollment_requests
		WHERE student_id = $1 AND course_id = $2 AND status = 'rejected'
		LIMIT 1
	`

	var exists int
	err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking rejected enrollment requests: %w", err)
	}
	return true, nil
}

// UpdateStatusTx moves a request to the given status inside an existing
// transaction.
func (r *EnrollmentRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.EnrollmentStatus) error {
	sql, args, err := r.sb.Update("enrollment_requests").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update enrollment status query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// ListByCourse retrieves requests for a course, optionally filtered by
// status.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64, status *models.EnrollmentStatus) ([]*models.EnrollmentRequest, error) {
	builder := r.sb.Select("id", "student_id", "course_id", "status", "requested_at", "updated_at").
		From("enrollment_requests").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("requested_at DESC")
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*status)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollment requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollment requests: %w", err)
	}
	defer rows.Close()

	var reqs []*models.EnrollmentRequest
	for rows.Next() {
		req, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment request row: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// ListByStudent retrieves all requests made by a student.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.EnrollmentRequest, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollment_requests
		WHERE student_id = $1
		ORDER BY requested_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollment requests: %w", err)
	}
	defer rows.Close()

	var reqs []*models.EnrollmentRequest
	for rows.Next() {
		req, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment request row: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
