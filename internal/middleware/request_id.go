package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectsclub/collab-api/internal/constants"
)

// longer inbound ids are replaced so they cannot bloat log lines
const requestIDMaxLen = 64

// RequestID propagates X-Request-ID, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(constants.ContextKeyRequestID, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
