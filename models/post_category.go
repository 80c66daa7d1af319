package models

import (
	"time"
)

type PostCategory struct {
	PostID     uint      `gorm:"column:post_id;primaryKey;autoIncrement:false" json:"postId"`
	CategoryID uint      `gorm:"column:category_id;primaryKey;autoIncrement:false" json:"categoryId"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()" json:"createdAt"`

	Post     *Post     `gorm:"foreignKey:PostID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}
