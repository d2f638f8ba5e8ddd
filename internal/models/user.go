// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the Ripple application.
// IsPrivate gates visibility of the user's profile and posts: a private
// account is only readable by accepted followers.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Gender    string         `json:"gender"`
	Birthday  *time.Time     `json:"birthday,omitempty"`
	AvatarURL string         `json:"avatar_url"`
	IsPrivate bool           `gorm:"not null;default:false" json:"is_private"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`

	// FollowersCount and FollowingCount are not persisted; computed at query time.
	FollowersCount int `gorm:"->;-:migration" json:"followers_count,omitempty"`
	FollowingCount int `gorm:"->;-:migration" json:"following_count,omitempty"`
}
