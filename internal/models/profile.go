package models

import "time"

// Profile is created at signup, or lazily on the first write if an older account has none.
type Profile struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	UserID    uint64 `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName  string `gorm:"type:varchar(255)" json:"full_name"`
	Program   string `gorm:"type:varchar(128)" json:"program"`
	Year      string `gorm:"type:varchar(16)" json:"year"`
	Bio       string `gorm:"type:text" json:"bio"`
	Skills    string `gorm:"type:text" json:"skills"`
	Linkedin  string `gorm:"type:varchar(255)" json:"linkedin"`
	Discord   string `gorm:"type:varchar(255)" json:"discord"`
	Instagram string `gorm:"type:varchar(255)" json:"instagram"`

	ResumeFilename string `gorm:"type:varchar(255)" json:"resume_filename"`
	ResumeData     []byte `json:"-"`
	AvatarData     []byte `json:"-"`
	AvatarMimetype string `gorm:"type:varchar(50)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlobColumns are left out of queries that only need profile metadata.
var BlobColumns = []string{"resume_data", "avatar_data"}

func (p Profile) HasResume() bool {
	return p.ResumeFilename != ""
}

func (p Profile) HasAvatar() bool {
	return p.AvatarMimetype != ""
}
