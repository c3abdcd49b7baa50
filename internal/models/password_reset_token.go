package models

import "time"

type PasswordResetToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Redeemable reports whether the token can still be exchanged for a password change at now.
func (t PasswordResetToken) Redeemable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
