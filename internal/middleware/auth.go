package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projectsclub/collab-api/internal/constants"
	apierrors "github.com/projectsclub/collab-api/internal/errors"
	"github.com/projectsclub/collab-api/internal/token"
)

// errNoToken means the request carried no Authorization header at all.
var errNoToken = errors.New("no bearer token")

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c, tokens)
		if err != nil {
			rejectToken(c, err)
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is present. Requests
// without one continue anonymously; a present but bad token is rejected.
func OptionalAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c, tokens)
		switch {
		case errors.Is(err, errNoToken):
			c.Next()
			return
		case err != nil:
			rejectToken(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens *token.Manager) (uint64, error) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return 0, errNoToken
	}

	scheme, value, ok := strings.Cut(header, " ")
	value = strings.TrimSpace(value)
	if !ok || !strings.EqualFold(scheme, "Bearer") || value == "" {
		return 0, token.ErrTokenInvalid
	}

	return tokens.Parse(value)
}

func rejectToken(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNoToken):
		apierrors.TokenRejected(c, apierrors.ErrCodeTokenMissing, "Missing authorization token")
	case errors.Is(err, token.ErrTokenExpired):
		apierrors.TokenRejected(c, apierrors.ErrCodeTokenExpired, "Token has expired")
	default:
		apierrors.TokenRejected(c, apierrors.ErrCodeTokenInvalid, "Invalid token")
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
