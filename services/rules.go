// services/rules.go
package services

import (
	"time"

	"fitlog/models"
)

// ruleOutcome is what a matched rule wants written back.
type ruleOutcome struct {
	current int

	// Streak bookkeeping, only set by the streak rule.
	streak        int
	lastWorkoutAt *time.Time
}

// applyRule evaluates one definition against one event. The second return
// value reports whether the rule matched at all; a non-matching event or an
// unrecognized rule kind produces no write. Counters are non-decreasing by
// construction, which is what keeps completion monotonic.
func applyRule(def models.Achievement, prev *models.AchievementProgress, ev Event, now time.Time) (ruleOutcome, bool) {
	cur := 0
	if prev != nil {
		cur = prev.Current
	}

	switch def.Rule {
	case models.RuleFirstWorkout:
		if _, ok := ev.(WorkoutEvent); !ok {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: 1}, true

	case models.RuleWorkoutCount:
		if _, ok := ev.(WorkoutEvent); !ok {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + 1}, true

	case models.RuleExerciseTotal:
		w, ok := ev.(WorkoutEvent)
		if !ok {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + w.ExercisesCompleted}, true

	case models.RulePerfectForm:
		w, ok := ev.(WorkoutEvent)
		if !ok || w.TotalExercises == 0 || w.ExercisesCompleted != w.TotalExercises {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: 1}, true

	case models.RuleStreak:
		w, ok := ev.(WorkoutEvent)
		if !ok {
			return ruleOutcome{}, false
		}
		return streakOutcome(prev, w, cur), true

	case models.RuleDurationTotal:
		w, ok := ev.(WorkoutEvent)
		if !ok {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + w.DurationSeconds}, true

	case models.RuleEarlyBird:
		w, ok := ev.(WorkoutEvent)
		if !ok || w.CompletedAt.Hour() >= 8 {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + 1}, true

	case models.RuleNightOwl:
		w, ok := ev.(WorkoutEvent)
		if !ok || w.CompletedAt.Hour() < 20 {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + 1}, true

	case models.RuleWeekend:
		w, ok := ev.(WorkoutEvent)
		if !ok {
			return ruleOutcome{}, false
		}
		day := w.CompletedAt.Weekday()
		if day != time.Saturday && day != time.Sunday {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + 1}, true

	case models.RuleSharedWorkout:
		w, ok := ev.(WorkoutEvent)
		if !ok || !w.IsShared {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + 1}, true

	case models.RuleLikesTotal:
		s, ok := ev.(SocialEvent)
		if !ok || s.Kind != models.ReactionLike {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + s.Count}, true

	case models.RuleInspiresTotal:
		s, ok := ev.(SocialEvent)
		if !ok || s.Kind != models.ReactionInspire {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + s.Count}, true

	case models.RuleDailyLog:
		p, ok := ev.(ProgressEvent)
		if !ok || p.Kind != models.EntryDaily {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + 1}, true

	case models.RuleWeightGoal:
		p, ok := ev.(ProgressEvent)
		if !ok || p.Kind != models.EntryWeight || !p.GoalAchieved {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: 1}, true

	case models.RuleMeasurementCount:
		p, ok := ev.(ProgressEvent)
		if !ok || p.Kind != models.EntryMeasurements {
			return ruleOutcome{}, false
		}
		return ruleOutcome{current: cur + 1}, true
	}

	// Unrecognized rule kinds never match. Catalog entries added ahead of a
	// deploy that understands them simply stay dormant.
	return ruleOutcome{}, false
}

// streakOutcome advances the consecutive-day counter kept on the progress
// row. Same-day repeats keep the streak, a workout dated the day after the
// last one extends it, anything else restarts at 1. The persisted current
// never decreases even when the streak resets.
func streakOutcome(prev *models.AchievementProgress, w WorkoutEvent, cur int) ruleOutcome {
	streak := 1
	if prev != nil && prev.LastWorkoutAt != nil {
		last := dateOf(*prev.LastWorkoutAt)
		event := dateOf(w.CompletedAt)
		switch {
		case event.Equal(last):
			streak = prev.Streak
			if streak < 1 {
				streak = 1
			}
		case event.Equal(last.AddDate(0, 0, 1)):
			streak = prev.Streak + 1
		}
	}

	current := streak
	if cur > current {
		current = cur
	}
	at := w.CompletedAt
	return ruleOutcome{current: current, streak: streak, lastWorkoutAt: &at}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
