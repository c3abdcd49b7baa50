package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Skills      string    `gorm:"type:text" json:"skills"`
	Category    string    `gorm:"type:varchar(64);not null;index" json:"category"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner        User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Applications []Application `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}
