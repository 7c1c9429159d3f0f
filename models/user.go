// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	Bio         string  `json:"bio"`
	Quote       string  `json:"quote"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsTrainer   bool    `gorm:"default:false" json:"is_trainer"`
	IsAdmin     bool    `gorm:"default:false" json:"is_admin"`
	IsBanned    bool    `gorm:"default:false" json:"is_banned"`

	// Denormalized lifetime stats, updated alongside the rows they count.
	TotalWorkouts  int `gorm:"default:0" json:"total_workouts"`
	TotalDuration  int `gorm:"default:0" json:"total_duration"` // seconds
	TotalPoints    int `gorm:"default:0" json:"total_points"`
	FollowerCount  int `gorm:"default:0" json:"follower_count"`
	FollowingCount int `gorm:"default:0" json:"following_count"`

	// Goals
	WeightGoalKg float64 `gorm:"default:0" json:"weight_goal_kg"`

	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLogin    time.Time `json:"last_login"`
	LastActivity time.Time `json:"last_activity"`

	Achievements []AchievementProgress `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
	Workouts     []Workout             `gorm:"foreignKey:UserID" json:"workouts,omitempty"`
}

func (User) TableName() string {
	return "users"
}
