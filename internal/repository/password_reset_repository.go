package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
)

// ErrTokenAlreadyUsed is returned by Redeem when another request consumed the token first.
var ErrTokenAlreadyUsed = errors.New("password reset repository: token already used")

// GormPasswordResetRepository is a GORM implementation of PasswordResetRepository
type GormPasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new PasswordResetRepository
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &GormPasswordResetRepository{db: db}
}

// Create stores a freshly issued token
func (r *GormPasswordResetRepository) Create(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

// PurgeStale deletes used tokens and tokens expired before now
func (r *GormPasswordResetRepository) PurgeStale(now time.Time) (int64, error) {
	result := r.db.Where("used = ? OR expires_at < ?", true, now).Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}

// FindByToken finds a token by its opaque value
func (r *GormPasswordResetRepository) FindByToken(token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.db.Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Redeem flips the used flag and writes the new hash in one transaction.
// The flag update is conditional so concurrent redemptions of the same token
// cannot both succeed.
func (r *GormPasswordResetRepository) Redeem(tokenID, userID uint64, passwordHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND used = ?", tokenID, false).
			Update("used", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTokenAlreadyUsed
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("password_hash", passwordHash).Error
	})
}
