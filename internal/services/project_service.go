package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/models"
	"github.com/projectsclub/collab-api/internal/repository"
	"github.com/projectsclub/collab-api/internal/utils"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrNotProjectOwner      = errors.New("only the project owner can perform this action")
	ErrProjectFieldRequired = errors.New("title, description and category are required")
	ErrProjectFieldEmpty    = errors.New("title, description and category cannot be empty")
)

// Project roles derived from ownership and accepted applications.
const (
	RoleOwner  = "Owner"
	RoleMember = "Member"
)

// ProjectListing is a project enriched for listing responses.
type ProjectListing struct {
	Project          models.Project
	ApplicationCount int64
	Role             string
}

// SearchResult is one page of a project search.
type SearchResult struct {
	Projects []ProjectListing
	Total    int64
	Page     int
	Pages    int
	Limit    int
}

// ProjectService provides business logic for the project catalog.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	OwnerID     uint64
	Title       string
	Description string
	Category    string
	Skills      string
}

var projectFieldLimits = map[string]int{
	"title":    255,
	"category": 64,
}

// CreateProject creates a project owned by the caller.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*ProjectListing, error) {
	project := &models.Project{
		OwnerID:     input.OwnerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Skills:      strings.TrimSpace(input.Skills),
	}
	if project.Title == "" || project.Description == "" || project.Category == "" {
		return nil, ErrProjectFieldRequired
	}
	if len(project.Title) > projectFieldLimits["title"] || len(project.Category) > projectFieldLimits["category"] {
		return nil, ErrFieldTooLong
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.GetProject(project.ID)
}

// GetProject returns a single project with its application count.
func (s *ProjectService) GetProject(id uint64) (*ProjectListing, error) {
	project, err := s.findProject(id)
	if err != nil {
		return nil, err
	}

	listings, err := s.enrich([]models.Project{*project}, "")
	if err != nil {
		return nil, err
	}
	return &listings[0], nil
}

// SearchInput holds raw search query parameters.
type SearchInput struct {
	Query    string
	Skills   string
	Category string
	Sort     string
	Page     int
	Limit    int
}

// SearchProjects filters, sorts and paginates the catalog.
func (s *ProjectService) SearchProjects(input SearchInput) (*SearchResult, error) {
	params := utils.NewPaginationParams(input.Page, input.Limit)

	filter := repository.ProjectFilter{
		Query:    input.Query,
		Category: input.Category,
		Sort:     parseSort(input.Sort),
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if skills := strings.TrimSpace(input.Skills); skills != "" {
		filter.Skills = strings.Split(skills, ",")
	}

	projects, total, err := s.projectRepo.Search(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	listings, err := s.enrich(projects, "")
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Projects: listings,
		Total:    total,
		Page:     params.Page,
		Pages:    utils.TotalPages(total, params.Limit),
		Limit:    params.Limit,
	}, nil
}

func parseSort(raw string) repository.ProjectSort {
	switch repository.ProjectSort(strings.ToLower(strings.TrimSpace(raw))) {
	case repository.SortTitle:
		return repository.SortTitle
	case repository.SortMostApplications:
		return repository.SortMostApplications
	default:
		return repository.SortNewest
	}
}

// GetMyProjects lists the caller's projects, newest first.
func (s *ProjectService) GetMyProjects(userID uint64) ([]ProjectListing, error) {
	projects, err := s.projectRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return s.enrich(projects, RoleOwner)
}

// GetUserProjects lists the projects a user owns or was accepted into.
// A project appears once; ownership wins over membership.
func (s *ProjectService) GetUserProjects(userID uint64) ([]ProjectListing, error) {
	owned, err := s.projectRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned projects: %w", err)
	}
	accepted, err := s.projectRepo.ListAccepted(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member projects: %w", err)
	}

	ownedListings, err := s.enrich(owned, RoleOwner)
	if err != nil {
		return nil, err
	}
	memberListings, err := s.enrich(accepted, RoleMember)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]bool, len(ownedListings))
	result := make([]ProjectListing, 0, len(ownedListings)+len(memberListings))
	for _, l := range ownedListings {
		seen[l.Project.ID] = true
		result = append(result, l)
	}
	for _, l := range memberListings {
		if seen[l.Project.ID] {
			continue
		}
		seen[l.Project.ID] = true
		result = append(result, l)
	}
	return result, nil
}

// UpdateProjectInput holds the fields an owner may change. Nil fields are left untouched.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Category    *string
	Skills      *string
}

// UpdateProject applies the supplied fields. Required fields may not be blanked.
func (s *ProjectService) UpdateProject(userID, projectID uint64, input UpdateProjectInput) (*ProjectListing, error) {
	project, err := s.findOwnedProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	required := map[string]*string{
		"title":       input.Title,
		"description": input.Description,
		"category":    input.Category,
	}
	for column, value := range required {
		if value == nil {
			continue
		}
		v := strings.TrimSpace(*value)
		if v == "" {
			return nil, ErrProjectFieldEmpty
		}
		if limit, ok := projectFieldLimits[column]; ok && len(v) > limit {
			return nil, ErrFieldTooLong
		}
		fields[column] = v
	}
	if input.Skills != nil {
		fields["skills"] = strings.TrimSpace(*input.Skills)
	}

	if err := s.projectRepo.Updates(project.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetProject(project.ID)
}

// DeleteProject removes a project and its applications.
func (s *ProjectService) DeleteProject(userID, projectID uint64) error {
	project, err := s.findOwnedProject(userID, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) findProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) findOwnedProject(userID, projectID uint64) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, ErrNotProjectOwner
	}
	return project, nil
}

// enrich attaches live application counts and the given role tag.
func (s *ProjectService) enrich(projects []models.Project, role string) ([]ProjectListing, error) {
	ids := make([]uint64, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	counts, err := s.projectRepo.ApplicationCounts(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	listings := make([]ProjectListing, len(projects))
	for i, p := range projects {
		listings[i] = ProjectListing{
			Project:          p,
			ApplicationCount: counts[p.ID],
			Role:             role,
		}
	}
	return listings, nil
}
