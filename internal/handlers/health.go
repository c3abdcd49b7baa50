package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler. db may be nil.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health always answers 200 while the process serves requests. The database
// field reports reachability without failing the probe.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "unknown"
	if h.db != nil {
		database = "ok"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			database = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"message":   "Projects Club API is running",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
