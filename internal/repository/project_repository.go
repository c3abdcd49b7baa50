package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/database"
	"github.com/projectsclub/collab-api/internal/models"
	"github.com/projectsclub/collab-api/internal/utils"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

const applicationCountSubQuery = "(SELECT COUNT(*) FROM applications WHERE applications.project_id = projects.id)"

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project with its owner
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.withOwner(r.db).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Search retrieves projects with filtering, sorting and pagination
func (r *GormProjectRepository) Search(filter ProjectFilter) ([]models.Project, int64, error) {
	var total int64
	if err := r.db.Model(&models.Project{}).Scopes(r.matching(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.withOwner(r.db.Scopes(r.matching(filter)))
	switch filter.Sort {
	case SortTitle:
		query = query.Order("projects.title ASC").Order("projects.id ASC")
	case SortMostApplications:
		query = query.Order(applicationCountSubQuery + " DESC").Order("projects.id DESC")
	default:
		query = query.Order("projects.created_at DESC").Order("projects.id DESC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize)))
	}

	projects := []models.Project{}
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// matching builds the filter conditions. It is applied separately to the
// count and the page query so neither inherits the other's clauses.
func (r *GormProjectRepository) matching(filter ProjectFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q := strings.TrimSpace(filter.Query); q != "" {
			pattern := likePattern(q)
			db = db.Where("(LOWER(projects.title) LIKE ? OR LOWER(projects.description) LIKE ?)", pattern, pattern)
		}

		terms := make([]string, 0, len(filter.Skills))
		for _, s := range filter.Skills {
			if s = strings.TrimSpace(s); s != "" {
				terms = append(terms, s)
			}
		}
		if len(terms) > 0 {
			clauses := make([]string, len(terms))
			args := make([]interface{}, len(terms))
			for i, term := range terms {
				clauses[i] = "LOWER(projects.skills) LIKE ?"
				args[i] = likePattern(term)
			}
			db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}

		if c := strings.TrimSpace(filter.Category); c != "" {
			db = db.Where("projects.category = ?", c)
		}
		return db
	}
}

func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

func (r *GormProjectRepository) withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner").Preload("Owner.Profile", withoutBlobs)
}

// ListByOwner lists a user's own projects, newest first
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.withOwner(r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListAccepted lists projects where the user holds an accepted application
func (r *GormProjectRepository) ListAccepted(userID uint64) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.withOwner(r.db).
		Joins("JOIN applications ON applications.project_id = projects.id").
		Where("applications.user_id = ? AND applications.status = ?", userID, models.ApplicationStatusAccepted).
		Order("projects.created_at DESC").Order("projects.id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ApplicationCounts counts applications per project. Projects without
// applications are absent from the map.
func (r *GormProjectRepository) ApplicationCounts(projectIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProjectID uint64
		Total     int64
	}
	err := r.db.Model(&models.Application{}).
		Select("project_id, COUNT(*) AS total").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ProjectID] = row.Total
	}
	return counts, nil
}

// Updates applies the given column values to a project
func (r *GormProjectRepository) Updates(id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Project{ID: id}).Updates(fields).Error
}

// Delete removes a project and its applications
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
