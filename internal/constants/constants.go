package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// Auth
const (
	MinPasswordLength    = 8
	DefaultTokenTTL      = 7 * 24 * time.Hour
	ResetTokenTTL        = 15 * time.Minute
	ResetTokenByteLength = 32
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Uploads
const (
	MaxResumeSize      = 5 << 20
	MaxAvatarSize      = 2 << 20
	MaxRequestBodySize = 6 << 20
	UploadFormField    = "file"
	ResumeContentType  = "application/pdf"
)

// AllowedAvatarTypes lists the accepted avatar MIME types.
var AllowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Rate limits, requests per window per client
const (
	LoginRateLimit         = 10
	ResetRequestRateLimit  = 5
	ResetPasswordRateLimit = 5
	RateLimitWindow        = time.Minute
)
