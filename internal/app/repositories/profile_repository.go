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
	"github.com/doruk/eduhub/internal/pkg/dberrors"
)

// ProfileRepository handles database operations for user profiles and
// the social graph (follows, friend requests, connections).
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateProfile inserts an empty profile for a new user. Creating a
// second profile for the same user is a no-op.
func (r *ProfileRepository) CreateProfile(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, bio, interests, skills)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, p.UserID, p.Bio, p.Interests, p.Skills).Scan(&p.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

// GetProfileByUserID retrieves a user's profile.
func (r *ProfileRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `SELECT id, user_id, bio, interests, skills FROM profiles WHERE user_id = $1`

	var p models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Bio, &p.Interests, &p.Skills)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile updates the bio, interests and skills of a profile.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, p *models.Profile) error {
	query, args, err := r.sb.Update("profiles").
		Set("bio", p.Bio).
		Set("interests", p.Interests).
		Set("skills", p.Skills).
		Where(squirrel.Eq{"user_id": p.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building profile update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// CreateFollow records a follower -> followed edge. Following the same
// user twice fails with ErrAlreadyFollowing.
func (r *ProfileRepository) CreateFollow(ctx context.Context, followerID, followedID int64) error {
	query := `INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, followerID, followedID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyFollowing
		}
		return fmt.Errorf("error creating follow: %w", err)
	}
	return nil
}

// DeleteFollow removes a follow edge.
func (r *ProfileRepository) DeleteFollow(ctx context.Context, followerID, followedID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID)
	if err != nil {
		return fmt.Errorf("error deleting follow: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetFollowers retrieves the users following the given user.
func (r *ProfileRepository) GetFollowers(ctx context.Context, userID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role
		FROM users u
		JOIN follows f ON f.follower_id = u.id
		WHERE f.followed_id = $1
		ORDER BY u.last_name, u.first_name
	`
	return r.queryUsers(ctx, query, userID)
}

// GetFollowing retrieves the users the given user follows.
func (r *ProfileRepository) GetFollowing(ctx context.Context, userID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role
		FROM users u
		JOIN follows f ON f.followed_id = u.id
		WHERE f.follower_id = $1
		ORDER BY u.last_name, u.first_name
	`
	return r.queryUsers(ctx, query, userID)
}

// CreateFriendRequest inserts a pending friend request. A duplicate
// request for the same pair fails with ErrFriendRequestExists.
func (r *ProfileRepository) CreateFriendRequest(ctx context.Context, fr *models.FriendRequest) (int64, error) {
	query := `
		INSERT INTO friend_requests (from_user_id, to_user_id, accepted)
		VALUES ($1, $2, FALSE)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, fr.FromUserID, fr.ToUserID).Scan(&fr.ID, &fr.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrFriendRequestExists
		}
		return 0, fmt.Errorf("error creating friend request: %w", err)
	}
	return fr.ID, nil
}

// GetFriendRequestByID retrieves a friend request by ID
func (r *ProfileRepository) GetFriendRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	query := `
		SELECT id, from_user_id, to_user_id, accepted, created_at
		FROM friend_requests
		WHERE id = $1
	`

	var fr models.FriendRequest
	err := r.db.QueryRow(ctx, query, id).
		Scan(&fr.ID, &fr.FromUserID, &fr.ToUserID, &fr.Accepted, &fr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving friend request: %w", err)
	}
	return &fr, nil
}

// ListPendingFriendRequests retrieves unaccepted requests addressed to
// the given user.
func (r *ProfileRepository) ListPendingFriendRequests(ctx context.Context, toUserID int64) ([]*models.FriendRequest, error) {
	query := `
		SELECT id, from_user_id, to_user_id, accepted, created_at
		FROM friend_requests
		WHERE to_user_id = $1 AND accepted = FALSE
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, toUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing friend requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.FriendRequest
	for rows.Next() {
		var fr models.FriendRequest
		err := rows.Scan(&fr.ID, &fr.FromUserID, &fr.ToUserID, &fr.Accepted, &fr.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning friend request row: %w", err)
		}
		requests = append(requests, &fr)
	}
	return requests, rows.Err()
}

// MarkFriendRequestAccepted flips a request to accepted inside the
// given transaction.
func (r *ProfileRepository) MarkFriendRequestAccepted(ctx context.Context, tx pgx.Tx, id int64) error {
	cmdTag, err := tx.Exec(ctx, `UPDATE friend_requests SET accepted = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error accepting friend request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFriendRequestNotFound
	}
	return nil
}

// DeleteFriendRequest deletes a request (decline or cancel).
func (r *ProfileRepository) DeleteFriendRequest(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting friend request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFriendRequestNotFound
	}
	return nil
}

// CreateConnectionTx stores an established friendship inside the given
// transaction. The pair is normalized so (a, b) and (b, a) map to the
// same row; re-creating an existing connection is a no-op.
func (r *ProfileRepository) CreateConnectionTx(ctx context.Context, tx pgx.Tx, user1ID, user2ID int64) error {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	query := `
		INSERT INTO connections (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := tx.Exec(ctx, query, user1ID, user2ID)
	if err != nil {
		return fmt.Errorf("error creating connection: %w", err)
	}
	return nil
}

// ConnectionExists reports whether the two users are already
// connected. Argument order does not matter.
func (r *ProfileRepository) ConnectionExists(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	query := `SELECT EXISTS (SELECT 1 FROM connections WHERE user1_id = $1 AND user2_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, user1ID, user2ID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking connection: %w", err)
	}
	return exists, nil
}

// GetConnections retrieves the users connected to the given user.
func (r *ProfileRepository) GetConnections(ctx context.Context, userID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role
		FROM users u
		JOIN connections c ON (c.user1_id = u.id AND c.user2_id = $1)
			OR (c.user2_id = u.id AND c.user1_id = $1)
		ORDER BY u.last_name, u.first_name
	`
	return r.queryUsers(ctx, query, userID)
}

func (r *ProfileRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
