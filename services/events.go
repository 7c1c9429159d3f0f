// services/events.go
package services

import (
	"fmt"
	"time"

	"fitlog/models"
)

// Event is one domain occurrence that can advance achievement progress.
// Exactly three shapes implement it: WorkoutEvent, ProgressEvent and
// SocialEvent. Rules only consume events of their own shape, so posting a
// social event can never touch a workout achievement.
type Event interface {
	eventKind() string
}

// WorkoutEvent fires when a training session is completed.
type WorkoutEvent struct {
	DurationSeconds    int
	ExercisesCompleted int
	TotalExercises     int
	CompletedAt        time.Time
	IsShared           bool
}

// ProgressEvent fires when a body-progress entry is logged.
type ProgressEvent struct {
	Kind         string // models.EntryWeight, models.EntryMeasurements, models.EntryDaily
	GoalAchieved bool
}

// SocialEvent fires when a member receives reactions on their posts.
type SocialEvent struct {
	Kind  string // models.ReactionLike, models.ReactionInspire
	Count int
}

func (WorkoutEvent) eventKind() string  { return "workout" }
func (ProgressEvent) eventKind() string { return "progress" }
func (SocialEvent) eventKind() string   { return "social" }

// Validate rejects malformed event payloads before evaluation.
func (e WorkoutEvent) Validate() error {
	if e.DurationSeconds < 0 {
		return fmt.Errorf("workout event: negative duration %d", e.DurationSeconds)
	}
	if e.TotalExercises <= 0 {
		return fmt.Errorf("workout event: total exercises must be positive, got %d", e.TotalExercises)
	}
	if e.ExercisesCompleted < 0 || e.ExercisesCompleted > e.TotalExercises {
		return fmt.Errorf("workout event: completed %d out of range [0,%d]", e.ExercisesCompleted, e.TotalExercises)
	}
	if e.CompletedAt.IsZero() {
		return fmt.Errorf("workout event: missing completion time")
	}
	return nil
}

func (e ProgressEvent) Validate() error {
	switch e.Kind {
	case models.EntryWeight, models.EntryMeasurements, models.EntryDaily:
		return nil
	}
	return fmt.Errorf("progress event: unknown kind %q", e.Kind)
}

func (e SocialEvent) Validate() error {
	switch e.Kind {
	case models.ReactionLike, models.ReactionInspire:
	default:
		return fmt.Errorf("social event: unknown kind %q", e.Kind)
	}
	if e.Count <= 0 {
		return fmt.Errorf("social event: count must be positive, got %d", e.Count)
	}
	return nil
}
