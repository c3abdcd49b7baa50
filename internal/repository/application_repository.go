package repository

import (
	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new application
func (r *GormApplicationRepository) Create(application *models.Application) error {
	return r.db.Create(application).Error
}

// FindByID finds an application with its project
func (r *GormApplicationRepository) FindByID(id uint64) (*models.Application, error) {
	var application models.Application
	if err := r.db.Preload("Project").First(&application, id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// Exists reports whether the user already applied to the project
func (r *GormApplicationRepository) Exists(projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus sets the status of an application
func (r *GormApplicationRepository) UpdateStatus(id uint64, status models.ApplicationStatus) error {
	return r.db.Model(&models.Application{ID: id}).Update("status", status).Error
}

// ListByUser lists a user's applications with project and owner
func (r *GormApplicationRepository) ListByUser(userID uint64) ([]models.Application, error) {
	applications := []models.Application{}
	err := r.db.
		Preload("Project").
		Preload("Project.Owner").
		Preload("Project.Owner.Profile", withoutBlobs).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// ListByProject lists a project's applications with applicant profiles
func (r *GormApplicationRepository) ListByProject(projectID uint64) ([]models.Application, error) {
	applications := []models.Application{}
	err := r.db.
		Preload("Applicant").
		Preload("Applicant.Profile", withoutBlobs).
		Where("project_id = ?", projectID).
		Order("created_at DESC").Order("id DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}
