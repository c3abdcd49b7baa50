package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/projects/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/projects/:id", "200"))
	assert.Equal(t, float64(2), got)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inflight))
}

func TestEmailSent(t *testing.T) {
	m := New()
	m.EmailSent("reset", nil)
	m.EmailSent("reset", errors.New("boom"))
	m.EmailSent("reset", errors.New("boom"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.emailsTotal.WithLabelValues("reset", "ok")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.emailsTotal.WithLabelValues("reset", "error")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New()
	m.EmailSent("welcome", nil)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "projects_club_emails_sent_total")
}
