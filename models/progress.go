// models/progress.go
package models

import "time"

// AchievementProgress is the per-user counter for one achievement.
//
// Invariants maintained by the evaluation engine:
//   - completed == (current >= target) after every write
//   - completed never reverts to false
//   - earned_at is set exactly once, on the false -> true transition
type AchievementProgress struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	UserID        uint `gorm:"not null;uniqueIndex:idx_progress_user_achievement" json:"user_id"`
	AchievementID uint `gorm:"not null;uniqueIndex:idx_progress_user_achievement" json:"achievement_id"`

	Current   int        `gorm:"default:0" json:"current"`
	Target    int        `gorm:"not null" json:"target"`
	Completed bool       `gorm:"default:false" json:"completed"`
	EarnedAt  *time.Time `json:"earned_at,omitempty"`

	// Streak bookkeeping for the consistency rule. Kept on the row instead
	// of process memory so streaks survive restarts and multiple instances.
	Streak        int        `gorm:"default:0" json:"streak"`
	LastWorkoutAt *time.Time `json:"last_workout_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (AchievementProgress) TableName() string {
	return "achievement_progress"
}
