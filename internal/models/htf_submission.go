package models

import "time"

type HTFSubmission struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	ProjectName string    `gorm:"type:varchar(255);not null" json:"project_name"`
	TeamName    string    `gorm:"type:varchar(255);not null;default:''" json:"team_name"`
	YoutubeURL  string    `gorm:"column:youtube_url;type:varchar(500);not null" json:"youtube_url"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (HTFSubmission) TableName() string {
	return "htf_submissions"
}
