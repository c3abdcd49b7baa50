package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectsclub/collab-api/internal/metrics"
	"github.com/projectsclub/collab-api/internal/repository"
	"github.com/projectsclub/collab-api/internal/services"
	"github.com/projectsclub/collab-api/internal/testutil"
	"github.com/projectsclub/collab-api/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T, reveal bool, opts ...func(*Deps)) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	tokens := token.NewManager("router-test-secret-0123456789", time.Hour)
	users := repository.NewUserRepository(db)
	projects := repository.NewProjectRepository(db)

	deps := Deps{
		DB:          db,
		Tokens:      tokens,
		Metrics:     metrics.New(),
		CORSOrigins: []string{"http://localhost:5173"},
		Auth: services.NewAuthService(services.AuthDeps{
			Users:       users,
			Resets:      repository.NewPasswordResetRepository(db),
			Tokens:      tokens,
			FrontendURL: "http://localhost:5173",
		}),
		Profiles:     services.NewProfileService(users, repository.NewProfileRepository(db)),
		Projects:     services.NewProjectService(projects),
		Applications: services.NewApplicationService(repository.NewApplicationRepository(db), projects),
		HTF:          services.NewHTFService(repository.NewHTFRepository(db), reveal),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	engine, err := New(deps)
	require.NoError(t, err)

	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(req *http.Request, bearer string) *httptest.ResponseRecorder {
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) json(method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, bearer)
}

func (s *testServer) upload(path, bearer, filename string, data []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req, bearer)
}

type authBody struct {
	AccessToken string `json:"access_token"`
	UserID      uint64 `json:"user_id"`
	Message     string `json:"message"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) signup(email string) authBody {
	s.t.Helper()
	w := s.json(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "password1",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[authBody](s.t, w)
}

func TestApplicationWorkflow(t *testing.T) {
	s := newTestServer(t, false)

	owner := s.signup("owner@example.com")
	assert.Equal(t, "User created successfully", owner.Message)
	assert.NotEmpty(t, owner.AccessToken)

	w := s.json(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, owner.UserID, decode[authBody](t, w).UserID)

	w = s.json(http.MethodPost, "/api/projects", owner.AccessToken, map[string]string{
		"title":       "Campus Map",
		"description": "Indoor navigation",
		"category":    "Web",
		"skills":      "Go, React",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	project := decode[struct {
		ID    uint64 `json:"id"`
		Owner struct {
			ID uint64 `json:"id"`
		} `json:"owner"`
	}](t, w)
	assert.Equal(t, owner.UserID, project.Owner.ID)

	applicant := s.signup("applicant@example.com")
	applyPath := fmt.Sprintf("/api/projects/%d/apply", project.ID)

	w = s.json(http.MethodPost, applyPath, applicant.AccessToken, map[string]string{"role": "Backend"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	application := decode[struct {
		ID     uint64 `json:"id"`
		Status string `json:"status"`
	}](t, w)
	assert.Equal(t, "pending", application.Status)

	statusPath := fmt.Sprintf("/api/projects/applications/%d/status", application.ID)
	w = s.json(http.MethodPut, statusPath, applicant.AccessToken, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.json(http.MethodPut, statusPath, owner.AccessToken, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", decode[struct {
		Status string `json:"status"`
	}](t, w).Status)

	w = s.json(http.MethodPost, applyPath, applicant.AccessToken, map[string]string{"role": "Backend"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.json(http.MethodGet, fmt.Sprintf("/api/projects/user/%d", applicant.UserID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	mine := decode[struct {
		Projects []struct {
			ID   uint64 `json:"id"`
			Role string `json:"role"`
		} `json:"projects"`
	}](t, w)
	require.Len(t, mine.Projects, 1)
	assert.Equal(t, "Member", mine.Projects[0].Role)

	w = s.json(http.MethodGet, "/api/projects/me", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"Owner"`)

	w = s.json(http.MethodGet, "/api/projects/applications/me", applicant.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct {
		Applications []json.RawMessage `json:"applications"`
	}](t, w).Applications, 1)
}

func TestSearchProjects_Public(t *testing.T) {
	s := newTestServer(t, false)
	owner := s.signup("owner@example.com")
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		w := s.json(http.MethodPost, "/api/projects/", owner.AccessToken, map[string]string{
			"title":       title,
			"description": "desc",
			"category":    "Web",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.json(http.MethodGet, "/api/projects/search?sort=az&limit=2&page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[struct {
		Projects []struct {
			Title string `json:"title"`
		} `json:"projects"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	}](t, w)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 2, result.Pages)
	require.Len(t, result.Projects, 1)
	assert.Equal(t, "Gamma", result.Projects[0].Title)
}

func TestResumeUpload(t *testing.T) {
	s := newTestServer(t, false)
	user := s.signup("student@example.com")

	w := s.upload("/api/profile/resume", user.AccessToken, "big.pdf", bytes.Repeat([]byte("a"), 6<<20))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 1<<20)...)
	w = s.upload("/api/profile/resume", user.AccessToken, "resume.pdf", pdf)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "resume.pdf", decode[struct {
		Filename string `json:"filename"`
	}](t, w).Filename)

	w = s.json(http.MethodGet, "/api/profile/resume", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, pdf, w.Body.Bytes())

	w = s.json(http.MethodGet, "/api/profile", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[struct {
		HasResume bool `json:"has_resume"`
	}](t, w).HasResume)
}

func TestProfileRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t, false)

	w := s.json(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.json(http.MethodGet, "/api/profile/avatar", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.json(http.MethodGet, "/api/profile/987", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTF_HiddenWhenNotRevealed(t *testing.T) {
	s := newTestServer(t, false)

	w := s.json(http.MethodGet, "/api/htf", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"submissions":[],"reveal":false}`, w.Body.String())

	user := s.signup("team@example.com")
	w = s.json(http.MethodPost, "/api/htf", user.AccessToken, map[string]string{
		"project_name": "Hack",
		"team_name":    "Team",
		"youtube_url":  "https://youtu.be/abc",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.json(http.MethodGet, "/api/htf/", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct {
		Submissions []json.RawMessage `json:"submissions"`
	}](t, w).Submissions, 1)

	w = s.json(http.MethodGet, "/api/htf", "", nil)
	assert.JSONEq(t, `{"submissions":[],"reveal":false}`, w.Body.String())
}

func TestLogin_RateLimited(t *testing.T) {
	s := newTestServer(t, false)

	var last int
	for i := 0; i < 11; i++ {
		w := s.json(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "password1",
		})
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func (s *testServer) loginFrom(forwardedFor string) int {
	s.t.Helper()
	payload, err := json.Marshal(map[string]string{"email": "nobody@example.com", "password": "password1"})
	require.NoError(s.t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	return s.do(req, "").Code
}

func TestLogin_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	s := newTestServer(t, false)

	codes := map[int]int{}
	for i := 0; i < 30; i++ {
		codes[s.loginFrom(fmt.Sprintf("1.2.3.%d", i))]++
	}
	assert.Equal(t, map[int]int{http.StatusUnauthorized: 10, http.StatusTooManyRequests: 20}, codes)
}

func TestLogin_RateLimitPerClientBehindTrustedProxy(t *testing.T) {
	// httptest requests arrive from 192.0.2.1.
	s := newTestServer(t, false, func(d *Deps) { d.TrustedProxies = []string{"192.0.2.1"} })

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusUnauthorized, s.loginFrom("203.0.113.7"))
	}
	assert.Equal(t, http.StatusTooManyRequests, s.loginFrom("203.0.113.7"))
	assert.Equal(t, http.StatusUnauthorized, s.loginFrom("203.0.113.8"))
}

func TestNew_RejectsInvalidTrustedProxy(t *testing.T) {
	_, err := New(Deps{TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, false)

	w := s.json(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[map[string]interface{}](t, w)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "ok", health["database"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.json(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "projects_club_http_requests_total")
}
