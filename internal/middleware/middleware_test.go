package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apierrors "github.com/projectsclub/collab-api/internal/errors"
	"github.com/projectsclub/collab-api/internal/ratelimit"
	"github.com/projectsclub/collab-api/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoAmI(c *gin.Context) {
	id, ok := GetUserID(c)
	c.JSON(http.StatusOK, gin.H{"user_id": id, "authenticated": ok})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var body struct {
		Code    string            `json:"code"`
		Message string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return apierrors.APIError{Code: body.Code, Message: body.Message, Details: body.Details}
}

func TestRequireAuth_Reasons(t *testing.T) {
	tokens := token.NewManager("middleware-test-secret", time.Hour)
	expiredTokens := token.NewManager("middleware-test-secret", -time.Minute)

	valid, err := tokens.Generate(42)
	require.NoError(t, err)
	expired, err := expiredTokens.Generate(42)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireAuth(tokens), whoAmI)

	tests := []struct {
		name   string
		header string
		code   string
		reason string
	}{
		{"missing", "", apierrors.ErrCodeTokenMissing, "missing"},
		{"wrong scheme", "Basic abc", apierrors.ErrCodeTokenInvalid, "invalid"},
		{"garbage", "Bearer not-a-jwt", apierrors.ErrCodeTokenInvalid, "invalid"},
		{"expired", "Bearer " + expired, apierrors.ErrCodeTokenExpired, "expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, map[string]string{"reason": tt.reason}, body.Details)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"authenticated":true}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	tokens := token.NewManager("middleware-test-secret", time.Hour)
	r := gin.New()
	r.GET("/feed", OptionalAuth(tokens), whoAmI)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"authenticated":false}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(ratelimit.Policy{Name: "login", Limit: 2, Window: time.Minute})

	r := gin.New()
	r.POST("/login", RateLimit(limiter, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/open", RateLimit(failingLimiter{}, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
