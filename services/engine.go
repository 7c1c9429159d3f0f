// services/engine.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitlog/models"
)

// Result is one progress write produced by an evaluation.
type Result struct {
	Definition    models.Achievement         `json:"definition"`
	Progress      models.AchievementProgress `json:"progress"`
	JustCompleted bool                       `json:"just_completed"`
}

// Engine walks the achievement catalog for one event and upserts progress
// for every definition whose rule matched. Evaluations for the same user are
// serialized through a per-user lock, so two concurrent submissions can't
// race each other's read-then-write.
type Engine struct {
	catalog  Catalog
	progress ProgressStore
	notifier Notifier
	now      func() time.Time

	locks sync.Map // userID -> *sync.Mutex
}

func NewEngine(catalog Catalog, progress ProgressStore, notifier Notifier) *Engine {
	return &Engine{
		catalog:  catalog,
		progress: progress,
		notifier: notifier,
		now:      time.Now,
	}
}

// RecordWorkoutEvent evaluates a completed workout for the user.
func (e *Engine) RecordWorkoutEvent(ctx context.Context, userID uint, ev WorkoutEvent) ([]Result, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, userID, ev)
}

// RecordProgressEvent evaluates a body-progress entry for the user.
func (e *Engine) RecordProgressEvent(ctx context.Context, userID uint, ev ProgressEvent) ([]Result, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, userID, ev)
}

// RecordSocialEvent evaluates received reactions for the user.
func (e *Engine) RecordSocialEvent(ctx context.Context, userID uint, ev SocialEvent) ([]Result, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, userID, ev)
}

// Evaluate runs one event through the full catalog.
//
// An unresolved user (id 0) is a silent no-op. A catalog or progress fetch
// failure aborts the whole call with no writes. A single definition's write
// failure is recorded and evaluation continues; the aggregated error is
// returned alongside the successful results. Unlock notices fire after the
// walk, in catalog order, and never roll anything back.
func (e *Engine) Evaluate(ctx context.Context, userID uint, event Event) ([]Result, error) {
	if userID == 0 {
		return nil, nil
	}

	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	rows, err := e.progress.ForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch progress: %w", err)
	}
	existing := make(map[uint]*models.AchievementProgress, len(rows))
	for i := range rows {
		existing[rows[i].AchievementID] = &rows[i]
	}

	defs, err := e.catalog.Definitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	now := e.now()
	var (
		results []Result
		unlocks []Unlock
		errs    []error
	)

	for _, def := range defs {
		prev := existing[def.ID]
		out, matched := applyRule(def, prev, event, now)
		if !matched {
			continue
		}

		row := nextRow(userID, def, prev, out, now)
		justCompleted := row.Completed && (prev == nil || !prev.Completed)

		if err := e.progress.Upsert(ctx, &row); err != nil {
			evalFailures.Inc()
			errs = append(errs, fmt.Errorf("achievement %q: %w", def.Name, err))
			continue
		}

		results = append(results, Result{Definition: def, Progress: row, JustCompleted: justCompleted})
		if justCompleted {
			unlocksTotal.Inc()
			unlocks = append(unlocks, Unlock{Name: def.Name, Description: def.Description, Points: def.Points})
		}
	}
	evaluationsTotal.WithLabelValues(event.eventKind()).Inc()

	if e.notifier != nil {
		for _, u := range unlocks {
			e.notifier.Unlocked(userID, u)
		}
	}

	return results, errors.Join(errs...)
}

// nextRow folds a rule outcome into the stored row, preserving the
// monotonic-completion contract: completed never reverts, earned_at is
// written once on the false -> true transition and carried over afterwards.
func nextRow(userID uint, def models.Achievement, prev *models.AchievementProgress, out ruleOutcome, now time.Time) models.AchievementProgress {
	row := models.AchievementProgress{
		UserID:        userID,
		AchievementID: def.ID,
		Current:       out.current,
		Target:        def.Target,
	}

	if prev != nil {
		row.ID = prev.ID
		row.CreatedAt = prev.CreatedAt
		row.EarnedAt = prev.EarnedAt
		row.Completed = prev.Completed
		row.Streak = prev.Streak
		row.LastWorkoutAt = prev.LastWorkoutAt
	}

	if out.lastWorkoutAt != nil {
		row.Streak = out.streak
		row.LastWorkoutAt = out.lastWorkoutAt
	}

	if !row.Completed && row.Current >= def.Target {
		row.Completed = true
		at := now
		row.EarnedAt = &at
	}

	return row
}

func (e *Engine) userLock(userID uint) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
