package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
	"github.com/projectsclub/collab-api/internal/repository"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrRoleRequired        = errors.New("role is required")
	ErrCannotApplyOwn      = errors.New("you cannot apply to your own project")
	ErrAlreadyApplied      = errors.New("you have already applied to this project")
	ErrInvalidStatus       = errors.New("status must be accepted or rejected")
	ErrApplicationDecided  = errors.New("application has already been decided")
)

// ApplicationService drives the pending -> accepted|rejected workflow.
type ApplicationService struct {
	applicationRepo repository.ApplicationRepository
	projectRepo     repository.ProjectRepository
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(applicationRepo repository.ApplicationRepository, projectRepo repository.ProjectRepository) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		projectRepo:     projectRepo,
	}
}

// ApplyInput represents parameters to apply to a project.
type ApplyInput struct {
	UserID    uint64
	ProjectID uint64
	Role      string
}

// Apply creates a pending application.
func (s *ApplicationService) Apply(input ApplyInput) (*models.Application, error) {
	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		return nil, ErrRoleRequired
	}
	if len(role) > 64 {
		return nil, ErrFieldTooLong
	}
	if project.OwnerID == input.UserID {
		return nil, ErrCannotApplyOwn
	}

	exists, err := s.applicationRepo.Exists(project.ID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check application: %w", err)
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	application := &models.Application{
		ProjectID: project.ID,
		UserID:    input.UserID,
		Role:      role,
		Status:    models.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	application.Project = *project
	return application, nil
}

// SetStatus records the owner's decision. Deciding again with the same
// status is a no-op; flipping a decision is refused.
func (s *ApplicationService) SetStatus(userID, applicationID uint64, status string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	if application.Project.ID == 0 {
		return nil, ErrProjectNotFound
	}
	if application.Project.OwnerID != userID {
		return nil, ErrNotProjectOwner
	}

	next := models.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.IsDecision() {
		return nil, ErrInvalidStatus
	}
	if application.Status == next {
		return application, nil
	}
	if application.Status != models.ApplicationStatusPending {
		return nil, ErrApplicationDecided
	}

	if err := s.applicationRepo.UpdateStatus(application.ID, next); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	application.Status = next
	return application, nil
}

// MyApplications lists the caller's applications with project and owner.
func (s *ApplicationService) MyApplications(userID uint64) ([]models.Application, error) {
	applications, err := s.applicationRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// ProjectApplications lists a project's applications for its owner.
func (s *ApplicationService) ProjectApplications(userID, projectID uint64) ([]models.Application, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.OwnerID != userID {
		return nil, ErrNotProjectOwner
	}

	applications, err := s.applicationRepo.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}
