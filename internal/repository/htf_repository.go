package repository

import (
	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
)

// GormHTFRepository is a GORM implementation of HTFRepository
type GormHTFRepository struct {
	db *gorm.DB
}

// NewHTFRepository creates a new HTFRepository
func NewHTFRepository(db *gorm.DB) HTFRepository {
	return &GormHTFRepository{db: db}
}

// Create creates a new submission
func (r *GormHTFRepository) Create(submission *models.HTFSubmission) error {
	return r.db.Create(submission).Error
}

// FindByID finds a submission by ID
func (r *GormHTFRepository) FindByID(id uint64) (*models.HTFSubmission, error) {
	var submission models.HTFSubmission
	if err := r.withSubmitter(r.db).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListAll lists every submission, newest first
func (r *GormHTFRepository) ListAll() ([]models.HTFSubmission, error) {
	submissions := []models.HTFSubmission{}
	err := r.withSubmitter(r.db).
		Order("created_at DESC").Order("id DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// ListByUser lists a user's submissions, newest first
func (r *GormHTFRepository) ListByUser(userID uint64) ([]models.HTFSubmission, error) {
	submissions := []models.HTFSubmission{}
	err := r.withSubmitter(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// Delete removes a submission
func (r *GormHTFRepository) Delete(id uint64) error {
	return r.db.Delete(&models.HTFSubmission{}, id).Error
}

func (r *GormHTFRepository) withSubmitter(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("User.Profile", withoutBlobs)
}
