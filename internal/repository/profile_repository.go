package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByUserID finds the profile metadata of a user
func (r *GormProfileRepository) FindByUserID(userID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Omit(models.BlobColumns...).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindOrCreate returns the user's profile, creating an empty one if missing
func (r *GormProfileRepository) FindOrCreate(userID uint64) (*models.Profile, error) {
	profile, err := r.FindByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = &models.Profile{UserID: userID}
	if err := r.db.Create(profile).Error; err != nil {
		// lost a race with a concurrent first write
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByUserID(userID)
		}
		return nil, err
	}
	return profile, nil
}

// Updates applies the given column values to a profile
func (r *GormProfileRepository) Updates(profileID uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Profile{ID: profileID}).Updates(fields).Error
}

// FindResume loads the resume filename and payload
func (r *GormProfileRepository) FindResume(userID uint64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Select("id", "user_id", "resume_filename", "resume_data").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAvatar loads the avatar payload and MIME type
func (r *GormProfileRepository) FindAvatar(userID uint64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Select("id", "user_id", "avatar_data", "avatar_mimetype").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
