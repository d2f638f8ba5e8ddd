// Package models contains data structures for the application's domain models.
package models

import "time"

// FollowStatus represents the state of a directed follow edge.
type FollowStatus string

const (
	// FollowStatusPending indicates a follow request awaiting approval by a private account.
	FollowStatusPending FollowStatus = "pending"
	// FollowStatusAccepted indicates an active follow relationship.
	FollowStatusAccepted FollowStatus = "accepted"
)

// FollowDirection selects which side of the edge a count or listing refers to.
type FollowDirection string

const (
	// DirectionFollowers counts or lists the users following a given user.
	DirectionFollowers FollowDirection = "followers"
	// DirectionFollowing counts or lists the users a given user follows.
	DirectionFollowing FollowDirection = "following"
)

// Follow is one directed edge of the follow graph: FollowerID follows
// FollowingID. Edges are independent per direction, so A following B and B
// following A are two separate rows. The ordered pair is unique; rejecting or
// unfollowing deletes the row outright so absence always means "free to
// follow again".
type Follow struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	FollowerID  uint         `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint         `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"following_id"`
	Status      FollowStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relationships
	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
