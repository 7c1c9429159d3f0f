// models/achievement.go
package models

import "time"

// RuleKind selects the evaluation rule for an achievement definition.
// The display name is free-form; dispatch happens on this column only, so
// renaming an achievement in the catalog can never detach it from its rule.
type RuleKind string

const (
	RuleFirstWorkout     RuleKind = "first_workout"
	RuleWorkoutCount     RuleKind = "workout_count"
	RuleExerciseTotal    RuleKind = "exercise_total"
	RulePerfectForm      RuleKind = "perfect_form"
	RuleStreak           RuleKind = "streak"
	RuleDurationTotal    RuleKind = "duration_total"
	RuleEarlyBird        RuleKind = "early_bird"
	RuleNightOwl         RuleKind = "night_owl"
	RuleWeekend          RuleKind = "weekend"
	RuleSharedWorkout    RuleKind = "shared_workout"
	RuleLikesTotal       RuleKind = "likes_total"
	RuleInspiresTotal    RuleKind = "inspires_total"
	RuleDailyLog         RuleKind = "daily_log"
	RuleWeightGoal       RuleKind = "weight_goal"
	RuleMeasurementCount RuleKind = "measurement_count"
)

type Achievement struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null;uniqueIndex" json:"name"`
	Description string   `gorm:"not null" json:"description"`
	Category    string   `gorm:"not null;index" json:"category"` // workout, nutrition, progress, social, special
	Rule        RuleKind `gorm:"not null;size:50;index" json:"rule"`
	Icon        string   `json:"icon"`

	// Target is the counter value at which the achievement completes;
	// Points are awarded once, on completion.
	Target int `gorm:"not null" json:"target"`
	Points int `gorm:"default:0" json:"points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
