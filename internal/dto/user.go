package dto

import (
	"time"

	"github.com/projectsclub/collab-api/internal/models"
)

// AuthResponse is returned by login and signup
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	UserID      uint64 `json:"user_id"`
	Message     string `json:"message,omitempty"`
}

// MeDTO represents the authenticated account
type MeDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerDTO identifies a user next to content they own
type OwnerDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SubmitterDTO identifies a user without exposing the email
type SubmitterDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// ToMeDTO converts a User model to MeDTO
func ToMeDTO(user models.User) MeDTO {
	return MeDTO{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToOwnerDTO converts a User model to OwnerDTO
func ToOwnerDTO(user models.User) OwnerDTO {
	return OwnerDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.DisplayName(),
	}
}
