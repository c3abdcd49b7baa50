package dto

import (
	"time"

	"github.com/projectsclub/collab-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID               uint64    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Skills           string    `json:"skills"`
	CreatedAt        time.Time `json:"created_at"`
	Owner            OwnerDTO  `json:"owner"`
	ApplicationCount int64     `json:"application_count"`
	Role             string    `json:"role,omitempty"`
}

// ProjectSearchResponse represents one page of search results
type ProjectSearchResponse struct {
	Projects []ProjectDTO `json:"projects"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	Pages    int          `json:"pages"`
	Limit    int          `json:"limit"`
}

// ProjectListResponse wraps an unpaginated project list
type ProjectListResponse struct {
	Projects []ProjectDTO `json:"projects"`
}

// ToProjectDTO converts a Project model to ProjectDTO. Role is omitted when empty.
func ToProjectDTO(project models.Project, applicationCount int64, role string) ProjectDTO {
	return ProjectDTO{
		ID:               project.ID,
		Title:            project.Title,
		Description:      project.Description,
		Category:         project.Category,
		Skills:           project.Skills,
		CreatedAt:        project.CreatedAt,
		Owner:            ToOwnerDTO(project.Owner),
		ApplicationCount: applicationCount,
		Role:             role,
	}
}
