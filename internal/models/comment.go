package models

import "gorm.io/gorm"

// Comment is append-only: rows are created and read, never updated, and
// removed only when the parent project is deleted.
type Comment struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Message   string `gorm:"type:text;not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author  User    `gorm:"foreignKey:AuthorID"`
}
