package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectsclub/collab-api/internal/dto"
	apierrors "github.com/projectsclub/collab-api/internal/errors"
	"github.com/projectsclub/collab-api/internal/middleware"
	"github.com/projectsclub/collab-api/internal/services"
)

// HTFHandler serves the submission gallery.
type HTFHandler struct {
	htfService *services.HTFService
}

// NewHTFHandler creates a new HTFHandler.
func NewHTFHandler(htfService *services.HTFService) *HTFHandler {
	return &HTFHandler{
		htfService: htfService,
	}
}

// ListSubmissions returns what the caller may see along with the reveal flag.
func (h *HTFHandler) ListSubmissions(c *gin.Context) {
	var caller *uint64
	if userID, ok := middleware.GetUserID(c); ok {
		caller = &userID
	}

	submissions, err := h.htfService.ListSubmissions(caller)
	if err != nil {
		respondHTFError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHTFListResponse(submissions, h.htfService.Reveal()))
}

// CreateSubmission adds a submission owned by the caller.
func (h *HTFHandler) CreateSubmission(c *gin.Context) {
	type CreateSubmissionRequest struct {
		ProjectName string  `json:"project_name"`
		TeamName    string  `json:"team_name"`
		YoutubeURL  string  `json:"youtube_url"`
		Description *string `json:"description"`
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateSubmissionRequest
	if !bindJSON(c, &req) {
		return
	}

	submission, err := h.htfService.CreateSubmission(services.CreateSubmissionInput{
		UserID:      userID,
		ProjectName: req.ProjectName,
		TeamName:    req.TeamName,
		YoutubeURL:  req.YoutubeURL,
		Description: req.Description,
	})
	if err != nil {
		respondHTFError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHTFSubmissionDTO(*submission))
}

// DeleteSubmission removes one of the caller's submissions.
func (h *HTFHandler) DeleteSubmission(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.htfService.DeleteSubmission(userID, submissionID); err != nil {
		respondHTFError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Submission deleted successfully"})
}

func respondHTFError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSubmissionFieldRequired),
		errors.Is(err, services.ErrInvalidYoutubeURL),
		errors.Is(err, services.ErrFieldTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotSubmissionOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		internalError(c, err)
	}
}
