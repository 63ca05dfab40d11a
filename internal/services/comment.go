package services

import (
	"strings"

	"github.com/synergy-dev/synergy/internal/domain"
	"github.com/synergy-dev/synergy/internal/models"
	"gorm.io/gorm"
)

// CommentService owns the per-project discussion feed.
type CommentService struct {
	db          *gorm.DB
	memberships *MembershipService
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db, memberships: NewMembershipService(db)}
}

// Append adds a comment to the project's feed. The timestamp is assigned at
// insert time by the store, never by the caller.
func (s *CommentService) Append(projectID, callerID uint, message string) (*models.Comment, error) {
	project, err := s.memberships.Authorize(projectID, callerID, domain.RoleMember)

	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrValidation
	}

	comment := models.Comment{
		ProjectID: project.ID,
		AuthorID:  callerID,
		Message:   message,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListForProject returns the feed in append order.
func (s *CommentService) ListForProject(projectID, callerID uint) ([]models.Comment, error) {
	if _, err := s.memberships.Authorize(projectID, callerID, domain.RoleMember); err != nil {
		return nil, err
	}

	var comments []models.Comment

	err := s.db.Preload("Author").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error

	if err != nil {
		return nil, err
	}

	return comments, nil
}
