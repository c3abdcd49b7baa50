package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/projectsclub/collab-api/internal/errors"
	"github.com/projectsclub/collab-api/internal/middleware"
	"github.com/projectsclub/collab-api/internal/services"
)

// errFileTooLarge marks an upload that overran the request body limit.
var errFileTooLarge = errors.New("file too large")

// parseIDParam reads a positive integer path parameter, answering 400 itself on failure.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// requireUserID returns the authenticated caller, answering 401 itself when absent.
func requireUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// internalError hides err from the client; the request logger records it.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	apierrors.InternalError(c, "")
}

// bindJSON decodes the request body, answering 400 itself on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierrors.BadRequest(c, "Request body too large")
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// readUpload reads the multipart "file" field fully into memory. At most
// maxBytes+1 bytes are read so callers can still detect an oversize file.
func readUpload(c *gin.Context, field string, maxBytes int64) (services.UploadInput, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return services.UploadInput{}, errFileTooLarge
		}
		return services.UploadInput{}, services.ErrNoFile
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return services.UploadInput{}, err
	}

	return services.UploadInput{Filename: header.Filename, Data: data}, nil
}

// parseQueryID reads a positive integer query parameter, answering 400 itself on failure.
func parseQueryID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
