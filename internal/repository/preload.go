package repository

import (
	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
)

// withoutBlobs keeps upload payloads out of preloaded profiles.
func withoutBlobs(tx *gorm.DB) *gorm.DB {
	return tx.Omit(models.BlobColumns...)
}
