package models

import (
	"time"
)

// Category is a node in a self-referencing tree; roots have a nil ParentID.
type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(100);unique;not null" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	ParentID    *uint     `gorm:"index" json:"parentId"`
	Parent      *Category `gorm:"foreignKey:ParentID" json:"-"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}
