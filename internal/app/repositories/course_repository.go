package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so
// repository methods can run either standalone or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CourseRepository handles database operations for courses and their
// membership sets.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateCourse inserts a course and returns its id.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	query := `
		INSERT INTO courses (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, course.Name, course.Description, course.CreatedBy).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return course.ID, nil
}

// GetCourseByID retrieves a course by ID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.CreatedBy,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves courses with optional search and membership filters,
// paginated. search matches name or description; teacherID/studentID
// restrict to courses having that member.
func (r *CourseRepository) GetAll(ctx context.Context, search *string, teacherID, studentID *int64, page, pageSize int) ([]models.Course, int64, error) {
	query := `
		SELECT id, name, description, created_by, created_at, updated_at,
			COUNT(*) OVER() AS total_count
		FROM courses
		WHERE 1=1
	`

	args := []interface{}{}
	argIndex := 1

	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex+1)
		args = append(args, pattern, pattern)
		argIndex += 2
	}

	if teacherID != nil {
		query += fmt.Sprintf(" AND id IN (SELECT course_id FROM course_teachers WHERE user_id = $%d)", argIndex)
		args = append(args, *teacherID)
		argIndex++
	}

	if studentID != nil {
		query += fmt.Sprintf(" AND id IN (SELECT course_id FROM course_students WHERE user_id = $%d)", argIndex)
		args = append(args, *studentID)
		argIndex++
	}

	offset := (page - 1) * pageSize
	query += " ORDER BY id"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing course list query: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	var total int64
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Description,
			&course.CreatedBy,
			&course.CreatedAt,
			&course.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	if courses == nil {
		courses = []models.Course{}
	}

	return courses, total, nil
}

// UpdateCourse updates name and description of an existing course.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("name", course.Name).
		Set("description", course.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// DeleteCourse deletes a course. Membership rows cascade.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// AddTeacher adds a user to the course's teacher set. Adding an
// existing member is a no-op.
func (r *CourseRepository) AddTeacher(ctx context.Context, courseID, userID int64) error {
	return addMember(ctx, r.db, "course_teachers", courseID, userID)
}

// RemoveTeacher removes a user from the course's teacher set.
func (r *CourseRepository) RemoveTeacher(ctx context.Context, courseID, userID int64) error {
	return removeMember(ctx, r.db, "course_teachers", courseID, userID)
}

// AddStudent adds a user to the course's student set. Adding an
// existing member is a no-op.
func (r *CourseRepository) AddStudent(ctx context.Context, courseID, userID int64) error {
	return addMember(ctx, r.db, "course_students", courseID, userID)
}

// AddStudentTx is AddStudent running on an existing transaction.
func (r *CourseRepository) AddStudentTx(ctx context.Context, tx pgx.Tx, courseID, userID int64) error {
	return addMember(ctx, tx, "course_students", courseID, userID)
}

// RemoveStudent removes a user from the course's student set.
func (r *CourseRepository) RemoveStudent(ctx context.Context, courseID, userID int64) error {
	return removeMember(ctx, r.db, "course_students", courseID, userID)
}

// IsTeacherOf reports whether the user is in the course's teacher set.
func (r *CourseRepository) IsTeacherOf(ctx context.Context, courseID, userID int64) (bool, error) {
	return isMember(ctx, r.db, "course_teachers", courseID, userID)
}

// IsStudentOf reports whether the user is in the course's student set.
func (r *CourseRepository) IsStudentOf(ctx context.Context, courseID, userID int64) (bool, error) {
	return isMember(ctx, r.db, "course_students", courseID, userID)
}

// GetTaughtCourseIDs retrieves ids of all courses the user teaches.
func (r *CourseRepository) GetTaughtCourseIDs(ctx context.Context, userID int64) ([]int64, error) {
	return memberCourseIDs(ctx, r.db, "course_teachers", userID)
}

// GetEnrolledCourseIDs retrieves ids of all courses the user is
// enrolled in.
func (r *CourseRepository) GetEnrolledCourseIDs(ctx context.Context, userID int64) ([]int64, error) {
	return memberCourseIDs(ctx, r.db, "course_students", userID)
}

// GetTeachers retrieves the users in the course's teacher set.
func (r *CourseRepository) GetTeachers(ctx context.Context, courseID int64) ([]*models.User, error) {
	return memberUsers(ctx, r.db, "course_teachers", courseID)
}

// GetStudents retrieves the users in the course's student set.
func (r *CourseRepository) GetStudents(ctx context.Context, courseID int64) ([]*models.User, error) {
	return memberUsers(ctx, r.db, "course_students", courseID)
}

// Membership tables share one layout: (course_id, user_id) with a
// composite primary key, so the helpers below are table-parameterized.

func addMember(ctx context.Context, q DBTX, table string, courseID, userID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, table)

	_, err := q.Exec(ctx, query, courseID, userID)
	if err != nil {
		return fmt.Errorf("error adding member to %s: %w", table, err)
	}
	return nil
}

func removeMember(ctx context.Context, q DBTX, table string, courseID, userID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE course_id = $1 AND user_id = $2`, table)

	cmdTag, err := q.Exec(ctx, query, courseID, userID)
	if err != nil {
		return fmt.Errorf("error removing member from %s: %w", table, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

func isMember(ctx context.Context, q DBTX, table string, courseID, userID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE course_id = $1 AND user_id = $2`, table)

	var exists int
	err := q.QueryRow(ctx, query, courseID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking membership in %s: %w", table, err)
	}
	return true, nil
}

func memberCourseIDs(ctx context.Context, q DBTX, table string, userID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT course_id FROM %s WHERE user_id = $1`, table)

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning course id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func memberUsers(ctx context.Context, q DBTX, table string, courseID int64) ([]*models.User, error) {
	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN %s m ON m.user_id = u.id
		WHERE m.course_id = $1
		ORDER BY u.id
	`, table)

	rows, err := q.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error querying members of %s: %w", table, err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning member row: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
