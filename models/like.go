package models

import (
	"time"
)

// Like is keyed by (user_id, post_id) so a user can like a post once.
type Like struct {
	UserID    uint      `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"userId"`
	PostID    uint      `gorm:"column:post_id;primaryKey;autoIncrement:false" json:"postId"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Post *Post `gorm:"foreignKey:PostID" json:"-"`
}
