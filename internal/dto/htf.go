package dto

import (
	"time"

	"github.com/projectsclub/collab-api/internal/models"
)

// HTFSubmissionDTO represents a gallery submission in API responses
type HTFSubmissionDTO struct {
	ID          uint64       `json:"id"`
	ProjectName string       `json:"project_name"`
	TeamName    string       `json:"team_name"`
	YoutubeURL  string       `json:"youtube_url"`
	Description *string      `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	Submitter   SubmitterDTO `json:"submitter"`
}

// HTFListResponse carries the visible submissions and the reveal switch
type HTFListResponse struct {
	Submissions []HTFSubmissionDTO `json:"submissions"`
	Reveal      bool               `json:"reveal"`
}

// ToHTFSubmissionDTO converts an HTFSubmission model to HTFSubmissionDTO
func ToHTFSubmissionDTO(submission models.HTFSubmission) HTFSubmissionDTO {
	submitter := SubmitterDTO{ID: submission.UserID}
	if submission.User.ID != 0 {
		submitter.Name = submission.User.DisplayName()
	}

	return HTFSubmissionDTO{
		ID:          submission.ID,
		ProjectName: submission.ProjectName,
		TeamName:    submission.TeamName,
		YoutubeURL:  submission.YoutubeURL,
		Description: submission.Description,
		CreatedAt:   submission.CreatedAt,
		Submitter:   submitter,
	}
}

// ToHTFListResponse converts submissions and the reveal flag
func ToHTFListResponse(submissions []models.HTFSubmission, reveal bool) HTFListResponse {
	items := make([]HTFSubmissionDTO, len(submissions))
	for i, s := range submissions {
		items[i] = ToHTFSubmissionDTO(s)
	}
	return HTFListResponse{Submissions: items, Reveal: reveal}
}
