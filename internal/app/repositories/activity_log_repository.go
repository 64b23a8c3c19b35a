package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doruk/eduhub/internal/app/models"
)

// ActivityLogRepository handles the append-only course activity log.
// Rows are never updated or deleted through this repository.
type ActivityLogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append records a course mutation performed by a user.
func (r *ActivityLogRepository) Append(ctx context.Context, courseID, userID int64, action models.CourseAction) error {
	sql, args, err := r.sb.Insert("course_activity_logs").
		Columns("course_id", "user_id", "action").
		Values(courseID, userID, string(action)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build append activity log query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error appending activity log: %w", err)
	}
	return nil
}

// ListByCourse retrieves log records for a course, newest first.
func (r *ActivityLogRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseActivityLog, error) {
	sql, args, err := r.sb.Select("id", "course_id", "user_id", "action", "timestamp").
		From("course_activity_logs").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("timestamp DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list activity log query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing activity log: %w", err)
	}
	defer rows.Close()

	var logs []*models.CourseActivityLog
	for rows.Next() {
		var entry models.CourseActivityLog
		err := rows.Scan(&entry.ID, &entry.CourseID, &entry.UserID, &entry.Action, &entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("error scanning activity log row: %w", err)
		}
		logs = append(logs, &entry)
	}
	return logs, rows.Err()
}
