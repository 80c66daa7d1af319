package models

import (
	"time"
)

type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string     `gorm:"type:text;unique;not null" json:"email"`
	Name      string     `gorm:"type:text;not null" json:"name"`
	Password  string     `gorm:"type:text;not null" json:"-"` // Never exposed in JSON
	Role      UserRole   `gorm:"type:user_role;not null;default:'user'" json:"role"`
	AvatarURL *string    `gorm:"type:text" json:"avatarUrl"`
	Bio       *string    `gorm:"type:text" json:"bio"`
	IsActive  bool       `gorm:"not null;default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updatedAt"`
}
