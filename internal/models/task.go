package models

import (
	"time"

	"github.com/synergy-dev/synergy/internal/domain"
	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      domain.TaskStatus `gorm:"not null;default:todo"`
	AssigneeID  *uint             `gorm:"index"`
	DueDate     *time.Time
	CreatedByID uint `gorm:"not null"`

	// Relationships
	Project   Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee  *User   `gorm:"foreignKey:AssigneeID"`
	CreatedBy User    `gorm:"foreignKey:CreatedByID"`
}
