// models/social.go
package models

import "time"

// Follow links a follower to the member they follow.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followee_id"`
	Follower   *User     `json:"follower,omitempty" gorm:"foreignKey:FollowerID"`
	Followee   *User     `json:"followee,omitempty" gorm:"foreignKey:FolloweeID"`
	CreatedAt  time.Time `json:"created_at"`
}

// Post is a progress update on the feed.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Body     string `gorm:"not null;type:text" json:"body"`
	ImageURL string `gorm:"size:500" json:"image_url,omitempty"`

	LikeCount    int `gorm:"default:0" json:"like_count"`
	InspireCount int `gorm:"default:0" json:"inspire_count"`
	CommentCount int `gorm:"default:0" json:"comment_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Reaction kinds.
const (
	ReactionLike    = "like"
	ReactionInspire = "inspire"
)

// Reaction is one like/inspire on a post. A user can react once per kind.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_reaction_once" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reaction_once" json:"user_id"`
	Kind      string    `gorm:"not null;size:20;uniqueIndex:idx_reaction_once" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Body      string    `gorm:"not null;type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string   { return "follows" }
func (Post) TableName() string     { return "posts" }
func (Reaction) TableName() string { return "reactions" }
func (Comment) TableName() string  { return "comments" }
