package types

import (
	"time"

	"github.com/synergy-dev/synergy/internal/domain"
	"github.com/synergy-dev/synergy/internal/models"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

type ProjectResponse struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	OwnerID       uint           `json:"owner_id"`
	OwnerName     string         `json:"owner_name,omitempty"`
	Deadline      *time.Time     `json:"deadline"`
	CreatedAt     time.Time      `json:"created_at"`
	Members       []uint         `json:"members,omitempty"`
	MemberDetails []UserResponse `json:"member_details,omitempty"`
	TaskCount     int64          `json:"task_count"`
}

// NewProjectResponse builds the detail shape: member ids and summaries plus
// the live task count.
func NewProjectResponse(p *models.Project, members []models.User, taskCount int64) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Deadline:    p.Deadline,
		CreatedAt:   p.CreatedAt,
		TaskCount:   taskCount,
	}

	for _, m := range members {
		resp.Members = append(resp.Members, m.ID)
		resp.MemberDetails = append(resp.MemberDetails, NewUserResponse(&m))
		if m.ID == p.OwnerID {
			resp.OwnerName = m.Name
		}
	}

	return resp
}

type TaskResponse struct {
	ID           uint              `json:"id"`
	ProjectID    uint              `json:"project_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Status       domain.TaskStatus `json:"status"`
	AssigneeID   *uint             `json:"assignee_id"`
	AssigneeName string            `json:"assignee_name,omitempty"`
	DueDate      *time.Time        `json:"due_date"`
	CreatedByID  uint              `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func NewTaskResponse(t *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		CreatedByID: t.CreatedByID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.Assignee != nil {
		resp.AssigneeName = t.Assignee.Name
	}

	return resp
}

type CommentResponse struct {
	ID         uint      `json:"id"`
	ProjectID  uint      `json:"project_id"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		ProjectID:  c.ProjectID,
		AuthorID:   c.AuthorID,
		AuthorName: c.Author.Name,
		Message:    c.Message,
		Timestamp:  c.CreatedAt,
	}
}
