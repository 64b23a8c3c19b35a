package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
	"github.com/doruk/eduhub/internal/pkg/dberrors"
)

// AssignmentRepository handles database operations for assignments,
// their submissions and course announcements.
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// CreateAssignment inserts an assignment and returns its id.
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, a *models.Assignment) (int64, error) {
	query := `
		INSERT INTO assignments (course_id, title, description, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, a.CourseID, a.Title, a.Description, a.DueDate).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating assignment: %w", err)
	}
	return a.ID, nil
}

// GetAssignmentByID retrieves an assignment by ID
func (r *AssignmentRepository) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `
		SELECT id, course_id, title, description, due_date, created_at
		FROM assignments
		WHERE id = $1
	`

	var a models.Assignment
	err := r.db.QueryRow(ctx, query, id).
		Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &a.DueDate, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}
	return &a, nil
}

// ListAssignmentsByCourse retrieves all assignments of a course ordered
// by due date.
func (r *AssignmentRepository) ListAssignmentsByCourse(ctx context.Context, courseID int64) ([]*models.Assignment, error) {
	query := `
		SELECT id, course_id, title, description, due_date, created_at
		FROM assignments
		WHERE course_id = $1
		ORDER BY due_date
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var a models.Assignment
		err := rows.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &a.DueDate, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

// UpdateAssignment updates an existing assignment.
func (r *AssignmentRepository) UpdateAssignment(ctx context.Context, a *models.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $1, description = $2, due_date = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, a.Title, a.Description, a.DueDate, a.ID)
	if err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// DeleteAssignment deletes an assignment and its submissions (cascade).
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// CreateSubmission stores a student's submission. A second submission
// for the same assignment fails with ErrAlreadySubmitted.
func (r *AssignmentRepository) CreateSubmission(ctx context.Context, s *models.AssignmentSubmission) (int64, error) {
	query := `
		INSERT INTO assignment_submissions (assignment_id, student_id, file_url)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at
	`

	err := r.db.QueryRow(ctx, query, s.AssignmentID, s.StudentID, s.FileURL).
		Scan(&s.ID, &s.SubmittedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadySubmitted
		}
		return 0, fmt.Errorf("error creating submission: %w", err)
	}
	return s.ID, nil
}

// GetSubmissionByID retrieves a submission by ID
func (r *AssignmentRepository) GetSubmissionByID(ctx context.Context, id int64) (*models.AssignmentSubmission, error) {
	query := `
		SELECT id, assignment_id, student_id, file_url, submitted_at
		FROM assignment_submissions
		WHERE id = $1
	`

	var s models.AssignmentSubmission
	err := r.db.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FileURL, &s.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}
	return &s, nil
}

// ListSubmissionsByAssignment retrieves all submissions for an
// assignment.
func (r *AssignmentRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]*models.AssignmentSubmission, error) {
	query := `
		SELECT id, assignment_id, student_id, file_url, submitted_at
		FROM assignment_submissions
		WHERE assignment_id = $1
		ORDER BY submitted_at
	`

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.AssignmentSubmission
	for rows.Next() {
		var s models.AssignmentSubmission
		err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FileURL, &s.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, &s)
	}
	return submissions, rows.Err()
}

// CreateAnnouncement inserts a course announcement.
func (r *AssignmentRepository) CreateAnnouncement(ctx context.Context, a *models.Announcement) (int64, error) {
	query := `
		INSERT INTO announcements (course_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, a.CourseID, a.Title, a.Message).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}
	return a.ID, nil
}

// GetAnnouncementByID retrieves an announcement by ID
func (r *AssignmentRepository) GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `SELECT id, course_id, title, message, created_at FROM announcements WHERE id = $1`

	var a models.Announcement
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.CourseID, &a.Title, &a.Message, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}
	return &a, nil
}

// ListAnnouncementsByCourse retrieves a course's announcements, newest
// first.
func (r *AssignmentRepository) ListAnnouncementsByCourse(ctx context.Context, courseID int64) ([]*models.Announcement, error) {
	query := `
		SELECT id, course_id, title, message, created_at
		FROM announcements
		WHERE course_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		var a models.Announcement
		err := rows.Scan(&a.ID, &a.CourseID, &a.Title, &a.Message, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, &a)
	}
	return announcements, rows.Err()
}

// DeleteAnnouncement deletes an announcement.
func (r *AssignmentRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
