package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// UpdateProfileRequest: payload for editing the caller's profile
type UpdateProfileRequest struct {
	Bio       *string `json:"bio,omitempty"`
	Expertise *string `json:"expertise,omitempty"`
	Interests *string `json:"interests,omitempty"`
}

// UserResponse: public view of a user profile
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Affiliation *string    `json:"affiliation,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	Expertise   *string    `json:"expertise,omitempty"`
	Interests   *string    `json:"interests,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// FromModelToUserResponse converts a user model to its public view.
func FromModelToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Affiliation: u.Affiliation,
		Bio:         u.Bio,
		Expertise:   u.Expertise,
		Interests:   u.Interests,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}
