package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectsclub/collab-api/internal/constants"
	"github.com/projectsclub/collab-api/internal/dto"
	apierrors "github.com/projectsclub/collab-api/internal/errors"
	"github.com/projectsclub/collab-api/internal/services"
)

// ProfileHandler serves profiles and their uploads.
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetOwnProfile returns the caller's full profile.
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	view, err := h.profileService.GetOwnProfile(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*view.User, *view.Profile))
}

// GetPublicProfile returns another user's profile without private fields.
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	view, err := h.profileService.GetPublicProfile(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicProfileDTO(*view.Profile))
}

// UpdateProfile applies the fields present in the body. Unknown fields are ignored.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	type UpdateProfileRequest struct {
		FullName  *string `json:"full_name"`
		Program   *string `json:"program"`
		Year      *string `json:"year"`
		Bio       *string `json:"bio"`
		Skills    *string `json:"skills"`
		Linkedin  *string `json:"linkedin"`
		Discord   *string `json:"discord"`
		Instagram *string `json:"instagram"`
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.profileService.UpdateProfile(userID, services.UpdateProfileInput{
		FullName:  req.FullName,
		Program:   req.Program,
		Year:      req.Year,
		Bio:       req.Bio,
		Skills:    req.Skills,
		Linkedin:  req.Linkedin,
		Discord:   req.Discord,
		Instagram: req.Instagram,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*view.User, *view.Profile))
}

// UploadResume stores the caller's PDF resume.
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	upload, err := readUpload(c, constants.UploadFormField, constants.MaxResumeSize)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	view, err := h.profileService.UploadResume(userID, upload)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Resume uploaded successfully",
		"filename": view.Profile.ResumeFilename,
	})
}

// DownloadResume streams the caller's resume.
func (h *ProfileHandler) DownloadResume(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	file, err := h.profileService.DownloadResume(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// DeleteResume removes the caller's resume.
func (h *ProfileHandler) DeleteResume(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteResume(userID); err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Resume deleted successfully"})
}

// UploadAvatar stores the caller's profile picture.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	upload, err := readUpload(c, constants.UploadFormField, constants.MaxAvatarSize)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	if _, err := h.profileService.UploadAvatar(userID, upload); err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Avatar uploaded successfully"})
}

// GetAvatar serves a profile picture. Avatars are public: the owner comes
// from the userId path segment or user_id query parameter, falling back to
// the caller when neither is given.
func (h *ProfileHandler) GetAvatar(c *gin.Context) {
	userID, ok := avatarOwner(c)
	if !ok {
		return
	}

	file, err := h.profileService.GetAvatar(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func avatarOwner(c *gin.Context) (uint64, bool) {
	switch {
	case c.Param("userId") != "":
		return parseIDParam(c, "userId")
	case c.Query("user_id") != "":
		return parseQueryID(c, "user_id")
	default:
		return requireUserID(c)
	}
}

// DeleteAvatar removes the caller's profile picture.
func (h *ProfileHandler) DeleteAvatar(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteAvatar(userID); err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Avatar deleted successfully"})
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errFileTooLarge),
		errors.Is(err, services.ErrResumeTooLarge),
		errors.Is(err, services.ErrAvatarTooLarge):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoFile),
		errors.Is(err, services.ErrResumeNotPDF),
		errors.Is(err, services.ErrAvatarType),
		errors.Is(err, services.ErrFieldTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrResumeNotFound),
		errors.Is(err, services.ErrAvatarNotFound),
		errors.Is(err, services.ErrProfileNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		internalError(c, err)
	}
}
