package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectsclub/collab-api/internal/dto"
	apierrors "github.com/projectsclub/collab-api/internal/errors"
	"github.com/projectsclub/collab-api/internal/services"
)

// ApplicationHandler serves the application workflow.
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Apply submits a pending application to a project.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	type ApplyRequest struct {
		Role string `json:"role"`
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(services.ApplyInput{
		UserID:    userID,
		ProjectID: projectID,
		Role:      req.Role,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*application))
}

// SetStatus accepts or rejects an application.
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	type SetStatusRequest struct {
		Status string `json:"status"`
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.SetStatus(userID, applicationID, req.Status)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*application))
}

// MyApplications lists the caller's applications.
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.MyApplications(userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationListResponse(applications))
}

// ProjectApplications lists the applications a project received.
func (h *ApplicationHandler) ProjectApplications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	applications, err := h.applicationService.ProjectApplications(userID, projectID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationListResponse(applications))
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoleRequired),
		errors.Is(err, services.ErrCannotApplyOwn),
		errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrApplicationDecided),
		errors.Is(err, services.ErrFieldTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		internalError(c, err)
	}
}
