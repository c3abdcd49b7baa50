package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/constants"
	"github.com/projectsclub/collab-api/internal/models"
	"github.com/projectsclub/collab-api/internal/repository"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrResumeNotPDF    = errors.New("resume must be a PDF file")
	ErrResumeTooLarge  = errors.New("resume exceeds 5MB")
	ErrResumeNotFound  = errors.New("no resume uploaded")
	ErrAvatarType      = errors.New("avatar must be a JPEG, PNG or WebP image")
	ErrAvatarTooLarge  = errors.New("avatar exceeds 2MB")
	ErrAvatarNotFound  = errors.New("no avatar uploaded")
	ErrProfileNotFound = errors.New("profile not found")
	ErrFieldTooLong    = errors.New("field value too long")
)

// ProfileView pairs a profile with the account it belongs to.
type ProfileView struct {
	User    *models.User
	Profile *models.Profile
}

// ProfileService provides business logic for profiles and their uploads.
type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// resolve loads the user and its profile, creating the profile once if missing.
func (s *ProfileService) resolve(userID uint64) (*ProfileView, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := s.profileRepo.FindOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	user.Profile = profile
	return &ProfileView{User: user, Profile: profile}, nil
}

// GetOwnProfile returns the caller's profile.
func (s *ProfileService) GetOwnProfile(userID uint64) (*ProfileView, error) {
	return s.resolve(userID)
}

// GetPublicProfile returns another user's profile. A user without a
// profile row reads as an empty profile.
func (s *ProfileService) GetPublicProfile(userID uint64) (*ProfileView, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = &models.Profile{UserID: userID}
	}

	user.Profile = profile
	return &ProfileView{User: user, Profile: profile}, nil
}

// UpdateProfileInput holds the fields a caller may change. Nil fields are left untouched.
type UpdateProfileInput struct {
	FullName  *string
	Program   *string
	Year      *string
	Bio       *string
	Skills    *string
	Linkedin  *string
	Discord   *string
	Instagram *string
}

// profile column limits mirror the varchar sizes of the schema
var profileFieldLimits = map[string]int{
	"full_name": 255,
	"program":   128,
	"year":      16,
	"linkedin":  255,
	"discord":   255,
	"instagram": 255,
}

func (in UpdateProfileInput) columns() map[string]*string {
	return map[string]*string{
		"full_name": in.FullName,
		"program":   in.Program,
		"year":      in.Year,
		"bio":       in.Bio,
		"skills":    in.Skills,
		"linkedin":  in.Linkedin,
		"discord":   in.Discord,
		"instagram": in.Instagram,
	}
}

// UpdateProfile applies the supplied fields.
func (s *ProfileService) UpdateProfile(userID uint64, input UpdateProfileInput) (*ProfileView, error) {
	view, err := s.resolve(userID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	for column, value := range input.columns() {
		if value == nil {
			continue
		}
		v := strings.TrimSpace(*value)
		if limit, ok := profileFieldLimits[column]; ok && len(v) > limit {
			return nil, fmt.Errorf("%w: %s", ErrFieldTooLong, column)
		}
		fields[column] = v
	}

	if err := s.profileRepo.Updates(view.Profile.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.resolve(userID)
}

// UploadInput is one file read from a multipart form.
type UploadInput struct {
	Filename string
	Data     []byte
}

// UploadResume stores a PDF resume, replacing any previous one.
func (s *ProfileService) UploadResume(userID uint64, input UploadInput) (*ProfileView, error) {
	filename := filepath.Base(strings.TrimSpace(input.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) || len(input.Data) == 0 {
		return nil, ErrNoFile
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, ErrResumeNotPDF
	}
	if len(input.Data) > constants.MaxResumeSize {
		return nil, ErrResumeTooLarge
	}
	if len(filename) > 255 {
		filename = filename[len(filename)-255:]
	}

	view, err := s.resolve(userID)
	if err != nil {
		return nil, err
	}

	err = s.profileRepo.Updates(view.Profile.ID, map[string]interface{}{
		"resume_filename": filename,
		"resume_data":     input.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	return s.resolve(userID)
}

// StoredFile is an upload read back from a profile.
type StoredFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DownloadResume returns the caller's stored resume.
func (s *ProfileService) DownloadResume(userID uint64) (*StoredFile, error) {
	profile, err := s.profileRepo.FindResume(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if !profile.HasResume() || len(profile.ResumeData) == 0 {
		return nil, ErrResumeNotFound
	}

	return &StoredFile{
		Filename:    profile.ResumeFilename,
		ContentType: constants.ResumeContentType,
		Data:        profile.ResumeData,
	}, nil
}

// DeleteResume clears the stored resume.
func (s *ProfileService) DeleteResume(userID uint64) error {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResumeNotFound
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if !profile.HasResume() {
		return ErrResumeNotFound
	}

	err = s.profileRepo.Updates(profile.ID, map[string]interface{}{
		"resume_filename": "",
		"resume_data":     nil,
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// UploadAvatar stores a profile picture. The type is sniffed from the
// payload; the client supplied Content-Type is not trusted.
func (s *ProfileService) UploadAvatar(userID uint64, input UploadInput) (*ProfileView, error) {
	if len(input.Data) == 0 {
		return nil, ErrNoFile
	}
	if len(input.Data) > constants.MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	mimeType := mimetype.Detect(input.Data).String()
	if !constants.AllowedAvatarTypes[mimeType] {
		return nil, ErrAvatarType
	}

	view, err := s.resolve(userID)
	if err != nil {
		return nil, err
	}

	err = s.profileRepo.Updates(view.Profile.ID, map[string]interface{}{
		"avatar_data":     input.Data,
		"avatar_mimetype": mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	return s.resolve(userID)
}

// GetAvatar returns any user's profile picture.
func (s *ProfileService) GetAvatar(userID uint64) (*StoredFile, error) {
	profile, err := s.profileRepo.FindAvatar(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvatarNotFound
		}
		return nil, fmt.Errorf("failed to load avatar: %w", err)
	}
	if !profile.HasAvatar() || len(profile.AvatarData) == 0 {
		return nil, ErrAvatarNotFound
	}

	return &StoredFile{
		ContentType: profile.AvatarMimetype,
		Data:        profile.AvatarData,
	}, nil
}

// DeleteAvatar clears the stored profile picture.
func (s *ProfileService) DeleteAvatar(userID uint64) error {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvatarNotFound
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if !profile.HasAvatar() {
		return ErrAvatarNotFound
	}

	err = s.profileRepo.Updates(profile.ID, map[string]interface{}{
		"avatar_data":     nil,
		"avatar_mimetype": "",
	})
	if err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}
