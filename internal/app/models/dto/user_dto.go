package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role" example:"student"`
	IsActive  bool   `json:"isActive"`
}

// NewUserResponse converts a user model into its response form.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
	}
}

// NewUserResponses converts a slice of user models.
func NewUserResponses(users []*models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, NewUserResponse(u))
	}
	return responses
}

// UserFilterRequest represents user filtering parameters
type UserFilterRequest struct {
	Role *string `form:"role,omitempty" binding:"omitempty,oneof=admin teacher student"`
}

// UserListResponse represents a list of users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// UpdateUserRequest represents user update data. Role changes are
// deliberately excluded.
type UpdateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserProfile combines account and profile fields for the caller's own
// profile view.
type UserProfile struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        string     `json:"role"`
	Bio         string     `json:"bio"`
	Interests   string     `json:"interests"`
	Skills      string     `json:"skills"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}
