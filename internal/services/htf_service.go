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
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrSubmissionFieldRequired = errors.New("project name, team name and YouTube URL are required")
	ErrInvalidYoutubeURL       = errors.New("URL must be a YouTube link")
	ErrNotSubmissionOwner      = errors.New("you can only delete your own submissions")
)

// HTFService manages the submission gallery. Visibility is a single
// deploy-time switch fixed at construction.
type HTFService struct {
	htfRepo repository.HTFRepository
	reveal  bool
}

// NewHTFService creates a new HTFService.
func NewHTFService(htfRepo repository.HTFRepository, reveal bool) *HTFService {
	return &HTFService{
		htfRepo: htfRepo,
		reveal:  reveal,
	}
}

// Reveal reports whether the gallery is public.
func (s *HTFService) Reveal() bool {
	return s.reveal
}

// ListSubmissions returns the submissions visible to the caller. A nil
// caller is anonymous.
func (s *HTFService) ListSubmissions(callerID *uint64) ([]models.HTFSubmission, error) {
	var (
		submissions []models.HTFSubmission
		err         error
	)
	switch {
	case s.reveal:
		submissions, err = s.htfRepo.ListAll()
	case callerID != nil:
		submissions, err = s.htfRepo.ListByUser(*callerID)
	default:
		return []models.HTFSubmission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// CreateSubmissionInput represents parameters to create a submission.
type CreateSubmissionInput struct {
	UserID      uint64
	ProjectName string
	TeamName    string
	YoutubeURL  string
	Description *string
}

// CreateSubmission adds a submission owned by the caller.
func (s *HTFService) CreateSubmission(input CreateSubmissionInput) (*models.HTFSubmission, error) {
	submission := &models.HTFSubmission{
		UserID:      input.UserID,
		ProjectName: strings.TrimSpace(input.ProjectName),
		TeamName:    strings.TrimSpace(input.TeamName),
		YoutubeURL:  strings.TrimSpace(input.YoutubeURL),
	}
	if submission.ProjectName == "" || submission.TeamName == "" || submission.YoutubeURL == "" {
		return nil, ErrSubmissionFieldRequired
	}
	if len(submission.ProjectName) > 255 || len(submission.TeamName) > 255 || len(submission.YoutubeURL) > 500 {
		return nil, ErrFieldTooLong
	}
	if !IsYoutubeURL(submission.YoutubeURL) {
		return nil, ErrInvalidYoutubeURL
	}
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			submission.Description = &d
		}
	}

	if err := s.htfRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	created, err := s.htfRepo.FindByID(submission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return created, nil
}

// IsYoutubeURL reports whether url points at youtube.com or youtu.be.
func IsYoutubeURL(url string) bool {
	u := strings.ToLower(url)
	return strings.Contains(u, "youtube.com") || strings.Contains(u, "youtu.be")
}

// DeleteSubmission removes one of the caller's submissions.
func (s *HTFService) DeleteSubmission(userID, submissionID uint64) error {
	submission, err := s.htfRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("failed to find submission: %w", err)
	}
	if submission.UserID != userID {
		return ErrNotSubmissionOwner
	}

	if err := s.htfRepo.Delete(submission.ID); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}
