package services

import (
	"errors"

	"github.com/synergy-dev/synergy/internal/domain"
	"github.com/synergy-dev/synergy/internal/models"
	"gorm.io/gorm"
)

// MembershipService decides whether a user may act on a project. A project's
// member set is its owner plus every ProjectMembership row, so the owner is
// always a member without holding a row of their own.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// Authorize loads the project and checks the caller against the required
// role. Returns ErrNotFound for an unknown project and ErrForbidden when the
// caller lacks the role, so handlers answer 404 for missing ids and 403 for
// existing projects the caller may not touch.
func (s *MembershipService) Authorize(projectID, userID uint, role domain.Role) (*models.Project, error) {
	var project models.Project

	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if project.OwnerID == userID {
		return &project, nil
	}

	if role == domain.RoleOwner {
		return nil, domain.ErrForbidden
	}

	member, err := s.hasMembershipRow(project.ID, userID)

	if err != nil {
		return nil, err
	}

	if !member {
		return nil, domain.ErrForbidden
	}

	return &project, nil
}

// IsMember reports whether userID belongs to the project's member set.
func (s *MembershipService) IsMember(project *models.Project, userID uint) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}
	return s.hasMembershipRow(project.ID, userID)
}

func (s *MembershipService) hasMembershipRow(projectID, userID uint) (bool, error) {
	var count int64

	err := s.db.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// InviteByEmail adds the user with the given email to the project's member
// set. Any member may invite. Inviting someone who is already a member is a
// no-op.
func (s *MembershipService) InviteByEmail(projectID, callerID uint, email string) error {
	project, err := s.Authorize(projectID, callerID, domain.RoleMember)

	if err != nil {
		return err
	}

	var user models.User

	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	member, err := s.IsMember(project, user.ID)

	if err != nil {
		return err
	}

	if member {
		return nil
	}

	membership := models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    user.ID,
	}

	return s.db.Create(&membership).Error
}

// Members returns the project's member set: the owner first, then invited
// members in join order.
func (s *MembershipService) Members(projectID uint) ([]models.User, error) {
	var project models.Project

	if err := s.db.Preload("Owner").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var invited []models.User

	err := s.db.Model(&models.User{}).
		Joins("JOIN project_memberships ON project_memberships.user_id = users.id").
		Where("project_memberships.project_id = ? AND project_memberships.deleted_at IS NULL", projectID).
		Order("project_memberships.created_at ASC, project_memberships.id ASC").
		Find(&invited).Error

	if err != nil {
		return nil, err
	}

	return append([]models.User{project.Owner}, invited...), nil
}
