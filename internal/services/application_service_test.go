package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectsclub/collab-api/internal/models"
)

func TestApplicationService_ApplyRules(t *testing.T) {
	env := setupServiceEnv(t)
	owner := env.signup(t, "o@x.com")
	applicant := env.signup(t, "a@x.com")
	project := env.project(t, owner.ID, "T")

	_, err := env.applications.Apply(ApplyInput{UserID: applicant.ID, ProjectID: 999, Role: "Dev"})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = env.applications.Apply(ApplyInput{UserID: applicant.ID, ProjectID: project.Project.ID, Role: " "})
	assert.ErrorIs(t, err, ErrRoleRequired)

	_, err = env.applications.Apply(ApplyInput{UserID: owner.ID, ProjectID: project.Project.ID, Role: "Dev"})
	assert.ErrorIs(t, err, ErrCannotApplyOwn)

	app, err := env.applications.Apply(ApplyInput{UserID: applicant.ID, ProjectID: project.Project.ID, Role: "Dev"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)

	_, err = env.applications.Apply(ApplyInput{UserID: applicant.ID, ProjectID: project.Project.ID, Role: "Design"})
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	var count int64
	require.NoError(t, env.db.Model(&models.Application{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplicationService_UniqueIndexBacksDuplicateCheck(t *testing.T) {
	env := setupServiceEnv(t)
	owner := env.signup(t, "o@x.com")
	applicant := env.signup(t, "a@x.com")
	project := env.project(t, owner.ID, "T")

	require.NoError(t, env.db.Create(&models.Application{
		ProjectID: project.Project.ID,
		UserID:    applicant.ID,
		Role:      "Dev",
	}).Error)

	err := env.db.Create(&models.Application{
		ProjectID: project.Project.ID,
		UserID:    applicant.ID,
		Role:      "Dev",
	}).Error
	assert.Error(t, err, "unique index on (project_id, user_id)")
}

func TestApplicationService_SetStatus(t *testing.T) {
	env := setupServiceEnv(t)
	owner := env.signup(t, "o@x.com")
	applicant := env.signup(t, "a@x.com")
	project := env.project(t, owner.ID, "T")

	app, err := env.applications.Apply(ApplyInput{UserID: applicant.ID, ProjectID: project.Project.ID, Role: "Dev"})
	require.NoError(t, err)

	_, err = env.applications.SetStatus(applicant.ID, app.ID, "accepted")
	assert.ErrorIs(t, err, ErrNotProjectOwner)

	_, err = env.applications.SetStatus(owner.ID, 999, "accepted")
	assert.ErrorIs(t, err, ErrApplicationNotFound)

	_, err = env.applications.SetStatus(owner.ID, app.ID, "pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := env.applications.SetStatus(owner.ID, app.ID, "Accepted")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)

	again, err := env.applications.SetStatus(owner.ID, app.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, again.Status)

	_, err = env.applications.SetStatus(owner.ID, app.ID, "rejected")
	assert.ErrorIs(t, err, ErrApplicationDecided)
}

func TestApplicationService_Listings(t *testing.T) {
	env := setupServiceEnv(t)
	owner := env.signup(t, "o@x.com")
	applicant := env.signup(t, "a@x.com")
	project := env.project(t, owner.ID, "T")

	_, err := env.profiles.UpdateProfile(applicant.ID, UpdateProfileInput{FullName: strPtr("Ann"), Program: strPtr("CS")})
	require.NoError(t, err)
	_, err = env.applications.Apply(ApplyInput{UserID: applicant.ID, ProjectID: project.Project.ID, Role: "Dev"})
	require.NoError(t, err)

	mine, err := env.applications.MyApplications(applicant.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "T", mine[0].Project.Title)
	assert.Equal(t, "o", mine[0].Project.Owner.DisplayName())

	_, err = env.applications.ProjectApplications(applicant.ID, project.Project.ID)
	assert.ErrorIs(t, err, ErrNotProjectOwner)
	_, err = env.applications.ProjectApplications(owner.ID, 999)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	received, err := env.applications.ProjectApplications(owner.ID, project.Project.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Applicant.Profile)
	assert.Equal(t, "Ann", received[0].Applicant.DisplayName())
	assert.Equal(t, "CS", received[0].Applicant.Profile.Program)
}
