package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

// EventRepository handles database operations for events and their
// attendance list.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// CreateEvent inserts an event and returns its id.
func (r *EventRepository) CreateEvent(ctx context.Context, e *models.Event) (int64, error) {
	query := `
		INSERT INTO events (course_id, title, description, date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, e.CourseID, e.Title, e.Description, e.Date, e.CreatedBy).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating event: %w", err)
	}
	return e.ID, nil
}

// GetEventByID retrieves an event by ID
func (r *EventRepository) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT id, course_id, title, description, date, created_by, created_at
		FROM events
		WHERE id = $1
	`

	var e models.Event
	err := r.db.QueryRow(ctx, query, id).
		Scan(&e.ID, &e.CourseID, &e.Title, &e.Description, &e.Date, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return &e, nil
}

// ListEventsByCourse retrieves a course's events ordered by date.
func (r *EventRepository) ListEventsByCourse(ctx context.Context, courseID int64) ([]*models.Event, error) {
	query := `
		SELECT id, course_id, title, description, date, created_by, created_at
		FROM events
		WHERE course_id = $1
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var e models.Event
		err := rows.Scan(&e.ID, &e.CourseID, &e.Title, &e.Description, &e.Date, &e.CreatedBy, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

// UpdateEvent updates an existing event.
func (r *EventRepository) UpdateEvent(ctx context.Context, e *models.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, e.Title, e.Description, e.Date, e.ID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// DeleteEvent deletes an event and its attendance rows (cascade).
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// AddAttendee registers a student as attending. Re-adding an existing
// attendee is a no-op.
func (r *EventRepository) AddAttendee(ctx context.Context, eventID, studentID int64) error {
	query := `
		INSERT INTO event_students (event_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, eventID, studentID)
	if err != nil {
		return fmt.Errorf("error adding event attendee: %w", err)
	}
	return nil
}

// RemoveAttendee removes a student from an event's attendance list.
func (r *EventRepository) RemoveAttendee(ctx context.Context, eventID, studentID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM event_students WHERE event_id = $1 AND student_id = $2`,
		eventID, studentID)
	if err != nil {
		return fmt.Errorf("error removing event attendee: %w", err)
	}
	return nil
}

// GetAttendees retrieves the users attending an event.
func (r *EventRepository) GetAttendees(ctx context.Context, eventID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role
		FROM users u
		JOIN event_students es ON es.student_id = u.id
		WHERE es.event_id = $1
		ORDER BY u.last_name, u.first_name
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing event attendees: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendee row: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
