// models/workout.go
package models

import "time"

// Workout is one logged training session.
type Workout struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Name               string    `gorm:"size:200" json:"name"`
	DurationSeconds    int       `gorm:"default:0" json:"duration_seconds"`
	ExercisesCompleted int       `gorm:"default:0" json:"exercises_completed"`
	TotalExercises     int       `gorm:"default:0" json:"total_exercises"`
	CompletedAt        time.Time `gorm:"not null;index" json:"completed_at"`
	IsShared           bool      `gorm:"default:false" json:"is_shared"`
	Notes              string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (Workout) TableName() string {
	return "workouts"
}
