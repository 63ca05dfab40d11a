package services

import (
	"errors"
	"strings"
	"time"

	"github.com/synergy-dev/synergy/internal/domain"
	"github.com/synergy-dev/synergy/internal/models"
	"gorm.io/gorm"
)

// TaskService owns tasks and enforces the assignee-must-be-member rule.
type TaskService struct {
	db          *gorm.DB
	memberships *MembershipService
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, memberships: NewMembershipService(db)}
}

// TaskInput is the full field set accepted at creation.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	AssigneeID  *uint
	DueDate     *time.Time
}

// TaskPatch carries a partial update. Nil means "leave unchanged"; a task
// cannot be unassigned once an assignee is set, matching creation semantics
// where assignee is optional but never cleared.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	AssigneeID  *uint
	DueDate     *time.Time
}

func (s *TaskService) Create(projectID, callerID uint, in TaskInput) (*models.Task, error) {
	project, err := s.memberships.Authorize(projectID, callerID, domain.RoleMember)

	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)

	if title == "" {
		return nil, domain.ErrValidation
	}

	status := in.Status

	if status == "" {
		status = domain.StatusTodo
	}

	if !status.Valid() {
		return nil, domain.ErrValidation
	}

	if in.AssigneeID != nil {
		member, err := s.memberships.IsMember(project, *in.AssigneeID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, domain.ErrInvalidAssignee
		}
	}

	task := models.Task{
		ProjectID:   project.ID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
		CreatedByID: callerID,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// Update applies the provided fields. Status may move between any two of the
// three states; the assignee check is the same as at creation, evaluated
// against the member set at update time.
func (s *TaskService) Update(taskID, callerID uint, patch TaskPatch) (*models.Task, error) {
	task, project, err := s.load(taskID, callerID)

	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.ErrValidation
		}
		updates["title"] = title
	}

	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, domain.ErrValidation
		}
		updates["status"] = *patch.Status
	}

	if patch.AssigneeID != nil {
		member, err := s.memberships.IsMember(project, *patch.AssigneeID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, domain.ErrInvalidAssignee
		}
		updates["assignee_id"] = *patch.AssigneeID
	}

	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}

	if len(updates) == 0 {
		return task, nil
	}

	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}

	// Reload with the assignee so responses carry the fresh state.
	if err := s.db.Preload("Assignee").First(task, task.ID).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(taskID, callerID uint) error {
	task, _, err := s.load(taskID, callerID)

	if err != nil {
		return err
	}

	return s.db.Delete(task).Error
}

func (s *TaskService) ListForProject(projectID, callerID uint) ([]models.Task, error) {
	if _, err := s.memberships.Authorize(projectID, callerID, domain.RoleMember); err != nil {
		return nil, err
	}

	var tasks []models.Task

	err := s.db.Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// ListForUser returns every task assigned to the caller across all
// projects. This is the only cross-project read; no membership check applies
// because assignment itself already required membership.
func (s *TaskService) ListForUser(callerID uint) ([]models.Task, error) {
	var tasks []models.Task

	err := s.db.Where("assignee_id = ?", callerID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// load fetches a task and authorizes the caller as a member of its parent
// project.
func (s *TaskService) load(taskID, callerID uint) (*models.Task, *models.Project, error) {
	var task models.Task

	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}

	project, err := s.memberships.Authorize(task.ProjectID, callerID, domain.RoleMember)

	if err != nil {
		return nil, nil, err
	}

	return &task, project, nil
}
