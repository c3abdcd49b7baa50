package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/projectsclub/collab-api/internal/errors"
	"github.com/projectsclub/collab-api/internal/ratelimit"
)

// RateLimit throttles requests per client IP. A failing limiter backend lets
// the request through.
func RateLimit(limiter ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
