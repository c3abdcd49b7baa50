package dto

import "github.com/projectsclub/collab-api/internal/models"

// PublicProfileDTO is the profile visible to anyone
type PublicProfileDTO struct {
	UserID    uint64 `json:"user_id"`
	FullName  string `json:"full_name"`
	Program   string `json:"program"`
	Year      string `json:"year"`
	Bio       string `json:"bio"`
	Skills    string `json:"skills"`
	Linkedin  string `json:"linkedin"`
	Discord   string `json:"discord"`
	Instagram string `json:"instagram"`
	HasResume bool   `json:"has_resume"`
	HasAvatar bool   `json:"has_avatar"`
}

// ProfileDTO is the profile as its owner sees it
type ProfileDTO struct {
	PublicProfileDTO
	Email          string `json:"email"`
	ResumeFilename string `json:"resume_filename"`
}

// ToPublicProfileDTO converts a Profile model to PublicProfileDTO
func ToPublicProfileDTO(profile models.Profile) PublicProfileDTO {
	return PublicProfileDTO{
		UserID:    profile.UserID,
		FullName:  profile.FullName,
		Program:   profile.Program,
		Year:      profile.Year,
		Bio:       profile.Bio,
		Skills:    profile.Skills,
		Linkedin:  profile.Linkedin,
		Discord:   profile.Discord,
		Instagram: profile.Instagram,
		HasResume: profile.HasResume(),
		HasAvatar: profile.HasAvatar(),
	}
}

// ToProfileDTO converts a user and its profile to ProfileDTO
func ToProfileDTO(user models.User, profile models.Profile) ProfileDTO {
	return ProfileDTO{
		PublicProfileDTO: ToPublicProfileDTO(profile),
		Email:            user.Email,
		ResumeFilename:   profile.ResumeFilename,
	}
}
