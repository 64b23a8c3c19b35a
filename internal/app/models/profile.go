package models

import "time"

// Profile holds the social-facing fields of a user. One profile exists
// per user and is created by the identity service right after the user
// row is written.
type Profile struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"userId" db:"user_id"`
	Bio       string `json:"bio" db:"bio"`
	Interests string `json:"interests" db:"interests"`
	Skills    string `json:"skills" db:"skills"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// Follow is a directed edge from follower to followed.
type Follow struct {
	ID         int64     `json:"id" db:"id"`
	FollowerID int64     `json:"followerId" db:"follower_id"`
	FollowedID int64     `json:"followedId" db:"followed_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// FriendRequest is a pending or accepted friendship offer; unique per
// (from, to) pair. Accepting one creates a Connection.
type FriendRequest struct {
	ID         int64     `json:"id" db:"id"`
	FromUserID int64     `json:"fromUserId" db:"from_user_id"`
	ToUserID   int64     `json:"toUserId" db:"to_user_id"`
	Accepted   bool      `json:"accepted" db:"accepted"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Connection is an established friendship, unique per unordered pair.
type Connection struct {
	ID      int64 `json:"id" db:"id"`
	User1ID int64 `json:"user1Id" db:"user1_id"`
	User2ID int64 `json:"user2Id" db:"user2_id"`
}
