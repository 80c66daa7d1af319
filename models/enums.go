package models

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleModerator:
		return true
	}
	return false
}

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// EnumTypes holds the CREATE TYPE statements AutoMigrate cannot emit itself.
var EnumTypes = []string{
	`DO $$ BEGIN
		CREATE TYPE user_role AS ENUM ('admin', 'user', 'moderator');
	EXCEPTION
		WHEN duplicate_object THEN null;
	END $$;`,
	`DO $$ BEGIN
		CREATE TYPE post_status AS ENUM ('draft', 'published', 'archived');
	EXCEPTION
		WHEN duplicate_object THEN null;
	END $$;`,
}

// All returns every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Post{},
		&Comment{},
		&PostCategory{},
		&Like{},
	}
}
