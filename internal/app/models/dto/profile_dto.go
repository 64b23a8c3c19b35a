package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Bio       string `json:"bio" binding:"max=1000"`
	Interests string `json:"interests" binding:"max=500"`
	Skills    string `json:"skills" binding:"max=500"`
}

// ProfileResponse represents a user's social profile
type ProfileResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Bio       string `json:"bio"`
	Interests string `json:"interests"`
	Skills    string `json:"skills"`

	User *UserResponse `json:"user,omitempty"`
}

// NewProfileResponse converts a profile model.
func NewProfileResponse(p *models.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Bio:       p.Bio,
		Interests: p.Interests,
		Skills:    p.Skills,
	}
	if p.User != nil {
		user := NewUserResponse(p.User)
		resp.User = &user
	}
	return resp
}

// FollowRequest identifies the user to follow or unfollow.
type FollowRequest struct {
	UserID int64 `json:"userId" binding:"required,min=1"`
}

// FriendRequestCreate identifies the user to send a friend request to.
type FriendRequestCreate struct {
	UserID int64 `json:"userId" binding:"required,min=1"`
}

// FriendRequestResponse represents a friend request
type FriendRequestResponse struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"fromUserId"`
	ToUserID   int64     `json:"toUserId"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewFriendRequestResponse converts a friend request model.
func NewFriendRequestResponse(fr *models.FriendRequest) FriendRequestResponse {
	return FriendRequestResponse{
		ID:         fr.ID,
		FromUserID: fr.FromUserID,
		ToUserID:   fr.ToUserID,
		Accepted:   fr.Accepted,
		CreatedAt:  fr.CreatedAt,
	}
}

// NewFriendRequestResponses converts a slice of friend request models.
func NewFriendRequestResponses(requests []*models.FriendRequest) []FriendRequestResponse {
	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, fr := range requests {
		responses = append(responses, NewFriendRequestResponse(fr))
	}
	return responses
}
