package dto

import (
	"time"

	"github.com/projectsclub/collab-api/internal/models"
)

// ApplicationProjectDTO summarizes the project an application targets
type ApplicationProjectDTO struct {
	ID       uint64    `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Owner    *OwnerDTO `json:"owner,omitempty"`
}

// ApplicantDTO summarizes the user behind an application
type ApplicantDTO struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Program string `json:"program"`
	Year    string `json:"year"`
	Skills  string `json:"skills"`
}

// ApplicationDTO represents an application in API responses
type ApplicationDTO struct {
	ID        uint64                   `json:"id"`
	ProjectID uint64                   `json:"project_id"`
	UserID    uint64                   `json:"user_id"`
	Role      string                   `json:"role"`
	Status    models.ApplicationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
	Project   *ApplicationProjectDTO   `json:"project,omitempty"`
	Applicant *ApplicantDTO            `json:"applicant,omitempty"`
}

// ApplicationListResponse wraps a list of applications
type ApplicationListResponse struct {
	Applications []ApplicationDTO `json:"applications"`
}

// ToApplicationDTO converts an Application model to ApplicationDTO
func ToApplicationDTO(application models.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:        application.ID,
		ProjectID: application.ProjectID,
		UserID:    application.UserID,
		Role:      application.Role,
		Status:    application.Status,
		CreatedAt: application.CreatedAt,
	}

	// Include project if preloaded
	if application.Project.ID != 0 {
		project := ApplicationProjectDTO{
			ID:       application.Project.ID,
			Title:    application.Project.Title,
			Category: application.Project.Category,
		}
		if application.Project.Owner.ID != 0 {
			owner := ToOwnerDTO(application.Project.Owner)
			project.Owner = &owner
		}
		dto.Project = &project
	}

	// Include applicant if preloaded
	if application.Applicant.ID != 0 {
		applicant := ApplicantDTO{
			ID:    application.Applicant.ID,
			Email: application.Applicant.Email,
			Name:  application.Applicant.DisplayName(),
		}
		if p := application.Applicant.Profile; p != nil {
			applicant.Program = p.Program
			applicant.Year = p.Year
			applicant.Skills = p.Skills
		}
		dto.Applicant = &applicant
	}

	return dto
}

// ToApplicationListResponse converts a slice of applications
func ToApplicationListResponse(applications []models.Application) ApplicationListResponse {
	items := make([]ApplicationDTO, len(applications))
	for i, a := range applications {
		items[i] = ToApplicationDTO(a)
	}
	return ApplicationListResponse{Applications: items}
}
