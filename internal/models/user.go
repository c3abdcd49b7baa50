package models

import (
	"strings"
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Profile      *Profile      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Projects     []Project     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Applications []Application `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// DisplayName is the profile's full name, falling back to the email local part.
func (u User) DisplayName() string {
	if u.Profile != nil && strings.TrimSpace(u.Profile.FullName) != "" {
		return u.Profile.FullName
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}
