package repository

import (
	"time"

	"github.com/projectsclub/collab-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and its empty profile within a single transaction.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// Delete removes a user and everything the user owns
	Delete(id uint64) error
}

// ProfileRepository defines the interface for profile data access.
// Lookups that only need metadata never load the upload payloads.
type ProfileRepository interface {
	// FindByUserID finds the profile metadata of a user
	FindByUserID(userID uint64) (*models.Profile, error)

	// FindOrCreate returns the user's profile, creating an empty one if missing
	FindOrCreate(userID uint64) (*models.Profile, error)

	// Updates applies the given column values to a profile
	Updates(profileID uint64, fields map[string]interface{}) error

	// FindResume loads the resume filename and payload
	FindResume(userID uint64) (*models.Profile, error)

	// FindAvatar loads the avatar payload and MIME type
	FindAvatar(userID uint64) (*models.Profile, error)
}

// ProjectSort selects the ordering of a project search
type ProjectSort string

const (
	SortNewest           ProjectSort = "newest"
	SortTitle            ProjectSort = "az"
	SortMostApplications ProjectSort = "most_applications"
)

// ProjectFilter holds filtering options for searching projects
type ProjectFilter struct {
	Query    string
	Skills   []string
	Category string
	Sort     ProjectSort
	Page     int
	PageSize int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project with its owner
	FindByID(id uint64) (*models.Project, error)

	// Search retrieves projects with filtering, sorting and pagination
	Search(filter ProjectFilter) ([]models.Project, int64, error)

	// ListByOwner lists a user's own projects, newest first
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// ListAccepted lists projects where the user holds an accepted application
	ListAccepted(userID uint64) ([]models.Project, error)

	// ApplicationCounts counts applications per project
	ApplicationCounts(projectIDs []uint64) (map[uint64]int64, error)

	// Updates applies the given column values to a project
	Updates(id uint64, fields map[string]interface{}) error

	// Delete removes a project and its applications
	Delete(id uint64) error
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// Create creates a new application
	Create(application *models.Application) error

	// FindByID finds an application with its project
	FindByID(id uint64) (*models.Application, error)

	// Exists reports whether the user already applied to the project
	Exists(projectID, userID uint64) (bool, error)

	// UpdateStatus sets the status of an application
	UpdateStatus(id uint64, status models.ApplicationStatus) error

	// ListByUser lists a user's applications with project and owner
	ListByUser(userID uint64) ([]models.Application, error)

	// ListByProject lists a project's applications with applicant profiles
	ListByProject(projectID uint64) ([]models.Application, error)
}

// PasswordResetRepository defines the interface for reset token data access
type PasswordResetRepository interface {
	// Create stores a freshly issued token
	Create(token *models.PasswordResetToken) error

	// PurgeStale deletes used tokens and tokens expired before now
	PurgeStale(now time.Time) (int64, error)

	// FindByToken finds a token by its opaque value
	FindByToken(token string) (*models.PasswordResetToken, error)

	// Redeem marks the token used and sets the new password hash atomically
	Redeem(tokenID, userID uint64, passwordHash string) error
}

// HTFRepository defines the interface for submission gallery data access
type HTFRepository interface {
	// Create creates a new submission
	Create(submission *models.HTFSubmission) error

	// FindByID finds a submission by ID
	FindByID(id uint64) (*models.HTFSubmission, error)

	// ListAll lists every submission, newest first
	ListAll() ([]models.HTFSubmission, error)

	// ListByUser lists a user's submissions, newest first
	ListByUser(userID uint64) ([]models.HTFSubmission, error)

	// Delete removes a submission
	Delete(id uint64) error
}
