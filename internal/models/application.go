package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsDecision reports whether s is a status an owner may set.
func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

type Application struct {
	ID        uint64            `gorm:"primarykey" json:"id"`
	ProjectID uint64            `gorm:"not null;uniqueIndex:idx_applications_project_user" json:"project_id"`
	UserID    uint64            `gorm:"not null;uniqueIndex:idx_applications_project_user;index" json:"user_id"`
	Role      string            `gorm:"type:varchar(64);not null" json:"role"`
	Status    ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relations
	Project   Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Applicant User    `gorm:"foreignKey:UserID" json:"applicant,omitempty"`
}
