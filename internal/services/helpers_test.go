package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/mailer"
	"github.com/projectsclub/collab-api/internal/models"
	"github.com/projectsclub/collab-api/internal/repository"
	"github.com/projectsclub/collab-api/internal/testutil"
	"github.com/projectsclub/collab-api/internal/token"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *fakeMailer) withSubject(prefix string) []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []mailer.Message
	for _, msg := range m.sent {
		if strings.HasPrefix(msg.Subject, prefix) {
			out = append(out, msg)
		}
	}
	return out
}

type serviceEnv struct {
	db           *gorm.DB
	mail         *fakeMailer
	tokens       *token.Manager
	auth         *AuthService
	profiles     *ProfileService
	projects     *ProjectService
	applications *ApplicationService
}

func setupServiceEnv(t *testing.T) serviceEnv {
	t.Helper()

	db := testutil.NewDB(t)
	mail := &fakeMailer{}
	tokens := token.NewManager("test-secret-key-0123456789", time.Hour)

	users := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	return serviceEnv{
		db:     db,
		mail:   mail,
		tokens: tokens,
		auth: NewAuthService(AuthDeps{
			Users:       users,
			Resets:      repository.NewPasswordResetRepository(db),
			Tokens:      tokens,
			Mailer:      mail,
			FrontendURL: "http://localhost:5173/",
		}),
		profiles:     NewProfileService(users, repository.NewProfileRepository(db)),
		projects:     NewProjectService(projectRepo),
		applications: NewApplicationService(repository.NewApplicationRepository(db), projectRepo),
	}
}

func (e serviceEnv) signup(t *testing.T, email string) *models.User {
	t.Helper()
	result, err := e.auth.Signup(SignupInput{Email: email, Password: "password1"})
	require.NoError(t, err)
	return result.User
}

func (e serviceEnv) project(t *testing.T, ownerID uint64, title string) *ProjectListing {
	t.Helper()
	listing, err := e.projects.CreateProject(CreateProjectInput{
		OwnerID:     ownerID,
		Title:       title,
		Description: "D",
		Category:    "Web",
	})
	require.NoError(t, err)
	return listing
}
