package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectsclub/collab-api/internal/dto"
	apierrors "github.com/projectsclub/collab-api/internal/errors"
	"github.com/projectsclub/collab-api/internal/services"
	"github.com/projectsclub/collab-api/internal/utils"
)

// ProjectHandler serves the project catalog.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// SearchProjects filters and paginates the catalog.
// Query params: q, skills (comma separated), category, sort, page, limit.
func (h *ProjectHandler) SearchProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.projectService.SearchProjects(services.SearchInput{
		Query:    c.Query("q"),
		Skills:   c.Query("skills"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectSearchResponse{
		Projects: projectDTOs(result.Projects),
		Total:    result.Total,
		Page:     result.Page,
		Pages:    result.Pages,
		Limit:    result.Limit,
	})
}

// CreateProject creates a project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Skills      string `json:"skills"`
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	listing, err := h.projectService.CreateProject(services.CreateProjectInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Skills:      req.Skills,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, projectDTO(*listing))
}

// GetProject returns one project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, projectDTO(*listing))
}

// GetMyProjects lists the caller's projects.
func (h *ProjectHandler) GetMyProjects(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	listings, err := h.projectService.GetMyProjects(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{Projects: projectDTOs(listings)})
}

// GetUserProjects lists the projects a user owns or belongs to, tagged by role.
func (h *ProjectHandler) GetUserProjects(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	listings, err := h.projectService.GetUserProjects(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{Projects: projectDTOs(listings)})
}

// UpdateProject applies the fields present in the body.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Skills      *string `json:"skills"`
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	listing, err := h.projectService.UpdateProject(userID, projectID, services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Skills:      req.Skills,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, projectDTO(*listing))
}

// DeleteProject removes a project and its applications.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(userID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Project deleted successfully"})
}

func projectDTO(listing services.ProjectListing) dto.ProjectDTO {
	return dto.ToProjectDTO(listing.Project, listing.ApplicationCount, listing.Role)
}

func projectDTOs(listings []services.ProjectListing) []dto.ProjectDTO {
	items := make([]dto.ProjectDTO, len(listings))
	for i, l := range listings {
		items[i] = projectDTO(l)
	}
	return items
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectFieldRequired),
		errors.Is(err, services.ErrProjectFieldEmpty),
		errors.Is(err, services.ErrFieldTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		internalError(c, err)
	}
}
