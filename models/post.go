package models

import (
	"time"

	"gorm.io/datatypes"
)

// PostMetadata is stored as jsonb and merged key-by-key on update.
type PostMetadata struct {
	Views       int      `json:"views"`
	ReadingTime int      `json:"readingTime"`
	Tags        []string `json:"tags"`
}

// PostMetadataPatch carries a partial metadata update; nil fields are left untouched.
type PostMetadataPatch struct {
	Views       *int      `json:"views,omitempty"`
	ReadingTime *int      `json:"readingTime,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

type Post struct {
	ID          uint                             `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string                           `gorm:"type:text;not null" json:"title"`
	Slug        string                           `gorm:"type:text;unique;not null" json:"slug"`
	Content     string                           `gorm:"type:text;not null" json:"content"`
	Excerpt     *string                          `gorm:"type:text" json:"excerpt"`
	CoverImage  *string                          `gorm:"type:text" json:"coverImage"`
	AuthorID    uint                             `gorm:"not null;index" json:"authorId"`
	Author      *User                            `gorm:"foreignKey:AuthorID" json:"-"`
	Status      PostStatus                       `gorm:"type:post_status;not null;default:'draft'" json:"status"`
	PublishedAt *time.Time                       `json:"publishedAt"`
	Metadata    datatypes.JSONType[PostMetadata] `gorm:"type:jsonb;default:'{\"views\":0,\"readingTime\":0,\"tags\":[]}'" json:"metadata"`
	CreatedAt   time.Time                        `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt   time.Time                        `gorm:"not null;default:now()" json:"updatedAt"`
}
