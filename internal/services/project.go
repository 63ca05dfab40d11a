package services

import (
	"strings"
	"time"

	"github.com/synergy-dev/synergy/internal/domain"
	"github.com/synergy-dev/synergy/internal/models"
	"gorm.io/gorm"
)

// ProjectService owns project metadata and the cascade that keeps a
// project's tasks and comments consistent with it.
type ProjectService struct {
	db          *gorm.DB
	memberships *MembershipService
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, memberships: NewMembershipService(db)}
}

// ProjectPatch carries the fields of a partial update. Nil means "leave
// unchanged".
type ProjectPatch struct {
	Name        *string
	Description *string
	Deadline    *time.Time
}

func (s *ProjectService) Create(ownerID uint, name, description string, deadline *time.Time) (*models.Project, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, domain.ErrValidation
	}

	project := models.Project{
		Name:        name,
		Description: description,
		Deadline:    deadline,
		OwnerID:     ownerID,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (s *ProjectService) Get(projectID, callerID uint) (*models.Project, error) {
	return s.memberships.Authorize(projectID, callerID, domain.RoleMember)
}

// Update applies the provided fields. Any member may update; the name may
// not become empty.
func (s *ProjectService) Update(projectID, callerID uint, patch ProjectPatch) (*models.Project, error) {
	project, err := s.memberships.Authorize(projectID, callerID, domain.RoleMember)

	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrValidation
		}
		updates["name"] = name
	}

	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if patch.Deadline != nil {
		updates["deadline"] = *patch.Deadline
	}

	if len(updates) == 0 {
		return project, nil
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}

	// Reload so callers see exactly what was persisted.
	if err := s.db.First(project, project.ID).Error; err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes the project together with its tasks, comments and
// memberships in one transaction, so no reader ever sees a partial cascade.
// Owner only.
func (s *ProjectService) Delete(projectID, callerID uint) error {
	project, err := s.memberships.Authorize(projectID, callerID, domain.RoleOwner)

	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectMembership{}).Error; err != nil {
			return err
		}

		return tx.Delete(project).Error
	})
}

// List returns every project the caller belongs to, most recently created
// first.
func (s *ProjectService) List(callerID uint) ([]models.Project, error) {
	memberOf := s.db.Model(&models.ProjectMembership{}).
		Select("project_id").
		Where("user_id = ?", callerID)

	var projects []models.Project

	err := s.db.Preload("Owner").
		Where("owner_id = ? OR id IN (?)", callerID, memberOf).
		Order("created_at DESC, id DESC").
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

// TaskCount reports the number of live tasks in a project.
func (s *ProjectService) TaskCount(projectID uint) (int64, error) {
	var count int64

	err := s.db.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Count(&count).Error

	return count, err
}

// Members exposes the member set for project detail responses.
func (s *ProjectService) Members(projectID uint) ([]models.User, error) {
	return s.memberships.Members(projectID)
}
