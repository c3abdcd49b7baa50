package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when creating the profile fails inside the signup transaction.
	ErrCreateProfile = errors.New("user repository: create profile failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithProfile creates a user and the profile atomically.
func (r *GormUserRepository) CreateWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateUser, err)
		}

		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateProfile, err)
		}

		user.Profile = profile
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user, its profile, projects (with their applications),
// applications, reset tokens and submissions.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Project{}).Select("id").Where("owner_id = ?", id)
		if err := tx.Where("project_id IN (?)", owned).Delete(&models.Application{}).Error; err != nil {
			return err
		}

		children := []interface{}{
			&models.Application{},
			&models.PasswordResetToken{},
			&models.HTFSubmission{},
			&models.Profile{},
		}
		for _, model := range children {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("owner_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
