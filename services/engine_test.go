package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fitlog/models"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeCatalog struct {
	defs []models.Achievement
	err  error
}

func (f *fakeCatalog) Definitions(ctx context.Context) ([]models.Achievement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.defs, nil
}

type fakeStore struct {
	rows     map[uint]models.AchievementProgress // keyed by achievement id; single-user tests
	fetchErr error
	failFor  map[uint]error // achievement id -> upsert error
	upserts  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[uint]models.AchievementProgress)}
}

func (f *fakeStore) ForUser(ctx context.Context, userID uint) ([]models.AchievementProgress, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]models.AchievementProgress, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) Upsert(ctx context.Context, row *models.AchievementProgress) error {
	if err, ok := f.failFor[row.AchievementID]; ok {
		return err
	}
	f.upserts++
	f.rows[row.AchievementID] = *row
	return nil
}

type fakeNotifier struct {
	calls []Unlock
}

func (f *fakeNotifier) Unlocked(userID uint, u Unlock) {
	f.calls = append(f.calls, u)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) // a Tuesday

func def(id uint, name string, rule models.RuleKind, target, points int) models.Achievement {
	return models.Achievement{ID: id, Name: name, Rule: rule, Target: target, Points: points}
}

func newTestEngine(catalog *fakeCatalog, store *fakeStore, notifier *fakeNotifier) *Engine {
	e := NewEngine(catalog, store, notifier)
	e.now = func() time.Time { return testNow }
	return e
}

func workoutAt(t time.Time) WorkoutEvent {
	return WorkoutEvent{
		DurationSeconds:    1800,
		ExercisesCompleted: 3,
		TotalExercises:     3,
		CompletedAt:        t,
	}
}

// ─── Core behavior ──────────────────────────────────────────────────────────

func TestEvaluateNoUserIsNoOp(t *testing.T) {
	store := newFakeStore()
	e := newTestEngine(&fakeCatalog{defs: []models.Achievement{def(1, "First Workout", models.RuleFirstWorkout, 1, 10)}}, store, &fakeNotifier{})

	results, err := e.Evaluate(context.Background(), 0, workoutAt(testNow))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results, got %d", len(results))
	}
	if store.upserts != 0 {
		t.Errorf("expected no writes, got %d", store.upserts)
	}
}

func TestFirstWorkoutUnlocksOnce(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(1, "First Workout", models.RuleFirstWorkout, 1, 10),
		def(2, "Workout Warrior", models.RuleWorkoutCount, 5, 100),
	}}
	e := newTestEngine(catalog, store, notifier)

	results, err := e.Evaluate(context.Background(), 7, workoutAt(testNow))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := store.rows[1]
	if first.Current != 1 || !first.Completed {
		t.Errorf("First Workout: want current=1 completed=true, got current=%d completed=%v", first.Current, first.Completed)
	}
	if first.EarnedAt == nil || !first.EarnedAt.Equal(testNow) {
		t.Errorf("First Workout: earned_at not set to now: %v", first.EarnedAt)
	}

	warrior := store.rows[2]
	if warrior.Current != 1 || warrior.Completed {
		t.Errorf("Workout Warrior: want current=1 completed=false, got current=%d completed=%v", warrior.Current, warrior.Completed)
	}
	if warrior.EarnedAt != nil {
		t.Errorf("Workout Warrior: earned_at should be nil, got %v", warrior.EarnedAt)
	}

	if len(notifier.calls) != 1 || notifier.calls[0].Name != "First Workout" {
		t.Fatalf("expected exactly one unlock for First Workout, got %+v", notifier.calls)
	}
}

func TestCumulativeAdditivity(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(2, "Workout Warrior", models.RuleWorkoutCount, 5, 100),
	}}
	e := newTestEngine(catalog, store, notifier)

	for i := 0; i < 5; i++ {
		if _, err := e.Evaluate(context.Background(), 7, workoutAt(testNow)); err != nil {
			t.Fatalf("evaluation %d failed: %v", i+1, err)
		}
		row := store.rows[2]
		if row.Current != i+1 {
			t.Fatalf("after %d events: want current=%d, got %d", i+1, i+1, row.Current)
		}
	}

	row := store.rows[2]
	if !row.Completed {
		t.Error("expected completion after 5 events")
	}
	if len(notifier.calls) != 1 {
		t.Errorf("expected exactly one unlock on the 5th event, got %d", len(notifier.calls))
	}
}

func TestMonotonicCompletion(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(1, "First Workout", models.RuleFirstWorkout, 1, 10),
	}}
	notifier := &fakeNotifier{}
	e := newTestEngine(catalog, store, notifier)

	if _, err := e.Evaluate(context.Background(), 7, workoutAt(testNow)); err != nil {
		t.Fatal(err)
	}
	earnedAt := store.rows[1].EarnedAt
	if earnedAt == nil {
		t.Fatal("earned_at not set")
	}

	// Later evaluations must not move earned_at or revert completion.
	e.now = func() time.Time { return testNow.Add(48 * time.Hour) }
	for i := 0; i < 3; i++ {
		if _, err := e.Evaluate(context.Background(), 7, workoutAt(testNow.Add(48*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	row := store.rows[1]
	if !row.Completed {
		t.Error("completion reverted")
	}
	if row.Current != 1 {
		t.Errorf("single-fire counter moved past 1: %d", row.Current)
	}
	if !row.EarnedAt.Equal(*earnedAt) {
		t.Errorf("earned_at changed: was %v, now %v", earnedAt, row.EarnedAt)
	}
	if len(notifier.calls) != 1 {
		t.Errorf("unlock re-fired: %d calls", len(notifier.calls))
	}
}

func TestCompletionConsistency(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(1, "First Workout", models.RuleFirstWorkout, 1, 10),
		def(2, "Workout Warrior", models.RuleWorkoutCount, 3, 100),
		def(3, "Exercise Master", models.RuleExerciseTotal, 10, 150),
	}}
	e := newTestEngine(catalog, store, &fakeNotifier{})

	for i := 0; i < 4; i++ {
		if _, err := e.Evaluate(context.Background(), 7, workoutAt(testNow)); err != nil {
			t.Fatal(err)
		}
		for id, row := range store.rows {
			if row.Completed != (row.Current >= row.Target) {
				t.Errorf("achievement %d after event %d: completed=%v but current=%d target=%d",
					id, i+1, row.Completed, row.Current, row.Target)
			}
			if (row.EarnedAt == nil) == row.Completed {
				t.Errorf("achievement %d: earned_at nil-ness disagrees with completed=%v", id, row.Completed)
			}
		}
	}
}

func TestCategoryIsolation(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(1, "First Workout", models.RuleFirstWorkout, 1, 10),
		def(2, "Community Leader", models.RuleLikesTotal, 100, 80),
		def(3, "Progress Tracker", models.RuleDailyLog, 30, 60),
	}}
	e := newTestEngine(catalog, store, &fakeNotifier{})

	results, err := e.Evaluate(context.Background(), 7, SocialEvent{Kind: models.ReactionLike, Count: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Definition.ID != 2 {
		t.Fatalf("social event should only touch the likes rule, got %+v", results)
	}
	if _, ok := store.rows[1]; ok {
		t.Error("social event wrote a workout achievement row")
	}
	if _, ok := store.rows[3]; ok {
		t.Error("social event wrote a progress achievement row")
	}

	results, err = e.Evaluate(context.Background(), 7, ProgressEvent{Kind: models.EntryDaily})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Definition.ID != 3 {
		t.Fatalf("daily progress event should only touch the daily-log rule, got %+v", results)
	}
}

func TestSocialCountsAccumulate(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(2, "Community Leader", models.RuleLikesTotal, 100, 80),
	}}
	e := newTestEngine(catalog, store, &fakeNotifier{})

	e.Evaluate(context.Background(), 7, SocialEvent{Kind: models.ReactionLike, Count: 3})
	e.Evaluate(context.Background(), 7, SocialEvent{Kind: models.ReactionLike, Count: 2})

	if got := store.rows[2].Current; got != 5 {
		t.Errorf("want current=5 after 3+2 likes, got %d", got)
	}

	// Inspires never advance the likes rule.
	e.Evaluate(context.Background(), 7, SocialEvent{Kind: models.ReactionInspire, Count: 10})
	if got := store.rows[2].Current; got != 5 {
		t.Errorf("inspire event advanced the likes rule: %d", got)
	}
}

func TestWeightGoalOnlyWhenAchieved(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(14, "Weight Goal Achiever", models.RuleWeightGoal, 1, 120),
	}}
	e := newTestEngine(catalog, store, notifier)

	e.Evaluate(context.Background(), 7, ProgressEvent{Kind: models.EntryWeight, GoalAchieved: false})
	if _, ok := store.rows[14]; ok {
		t.Fatal("goal_achieved=false should not write")
	}

	e.Evaluate(context.Background(), 7, ProgressEvent{Kind: models.EntryWeight, GoalAchieved: true})
	row := store.rows[14]
	if row.Current != 1 || !row.Completed {
		t.Errorf("want completed in one step, got current=%d completed=%v", row.Current, row.Completed)
	}
	if len(notifier.calls) != 1 {
		t.Errorf("expected one unlock, got %d", len(notifier.calls))
	}
}

func TestUnknownRuleNeverMatches(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(99, "Mystery Badge", models.RuleKind("time_traveler"), 1, 500),
	}}
	e := newTestEngine(catalog, store, &fakeNotifier{})

	for _, ev := range []Event{
		workoutAt(testNow),
		SocialEvent{Kind: models.ReactionLike, Count: 1},
		ProgressEvent{Kind: models.EntryDaily},
	} {
		results, err := e.Evaluate(context.Background(), 7, ev)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 0 {
			t.Errorf("unrecognized rule matched event %T", ev)
		}
	}
	if store.upserts != 0 {
		t.Errorf("unrecognized rule produced %d writes", store.upserts)
	}
}

// ─── Failure modes ──────────────────────────────────────────────────────────

func TestFetchFailureAbortsWithoutWrites(t *testing.T) {
	store := newFakeStore()
	store.fetchErr = errors.New("connection reset")
	e := newTestEngine(&fakeCatalog{defs: []models.Achievement{def(1, "First Workout", models.RuleFirstWorkout, 1, 10)}}, store, &fakeNotifier{})

	if _, err := e.Evaluate(context.Background(), 7, workoutAt(testNow)); err == nil {
		t.Fatal("expected error from progress fetch failure")
	}
	if store.upserts != 0 {
		t.Errorf("expected no writes after fetch failure, got %d", store.upserts)
	}

	store.fetchErr = nil
	catalog := &fakeCatalog{err: errors.New("catalog unavailable")}
	e = newTestEngine(catalog, store, &fakeNotifier{})
	if _, err := e.Evaluate(context.Background(), 7, workoutAt(testNow)); err == nil {
		t.Fatal("expected error from catalog fetch failure")
	}
	if store.upserts != 0 {
		t.Errorf("expected no writes after catalog failure, got %d", store.upserts)
	}
}

func TestWriteFailureIsolatedPerDefinition(t *testing.T) {
	store := newFakeStore()
	store.failFor = map[uint]error{2: fmt.Errorf("constraint violation")}
	notifier := &fakeNotifier{}
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(1, "First Workout", models.RuleFirstWorkout, 1, 10),
		def(2, "Workout Warrior", models.RuleWorkoutCount, 5, 100),
		def(3, "Exercise Master", models.RuleExerciseTotal, 500, 150),
	}}
	e := newTestEngine(catalog, store, notifier)

	results, err := e.Evaluate(context.Background(), 7, workoutAt(testNow))
	if err == nil {
		t.Fatal("expected aggregated error for the failed definition")
	}
	if len(results) != 2 {
		t.Fatalf("expected the other 2 definitions to still be written, got %d", len(results))
	}
	if _, ok := store.rows[1]; !ok {
		t.Error("definition before the failure was not written")
	}
	if _, ok := store.rows[3]; !ok {
		t.Error("definition after the failure was not written")
	}
	// The unlock for First Workout still fires despite the unrelated failure.
	if len(notifier.calls) != 1 || notifier.calls[0].Name != "First Workout" {
		t.Errorf("expected First Workout unlock, got %+v", notifier.calls)
	}
}

// ─── Streaks ────────────────────────────────────────────────────────────────

func TestStreakConsecutiveDays(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(5, "Consistency King", models.RuleStreak, 7, 75),
	}}
	e := newTestEngine(catalog, store, &fakeNotifier{})

	day := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if _, err := e.Evaluate(context.Background(), 7, workoutAt(day.AddDate(0, 0, i))); err != nil {
			t.Fatal(err)
		}
	}

	row := store.rows[5]
	if row.Streak != 4 || row.Current != 4 {
		t.Errorf("want streak=4 current=4, got streak=%d current=%d", row.Streak, row.Current)
	}
}

func TestStreakSameDayDoesNotDoubleCount(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(5, "Consistency King", models.RuleStreak, 7, 75),
	}}
	e := newTestEngine(catalog, store, &fakeNotifier{})

	day := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	e.Evaluate(context.Background(), 7, workoutAt(day))
	e.Evaluate(context.Background(), 7, workoutAt(day.Add(10*time.Hour)))

	if row := store.rows[5]; row.Streak != 1 {
		t.Errorf("two workouts on the same day: want streak=1, got %d", row.Streak)
	}
}

func TestStreakResetKeepsBestCurrent(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(5, "Consistency King", models.RuleStreak, 7, 75),
	}}
	e := newTestEngine(catalog, store, &fakeNotifier{})

	day := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		e.Evaluate(context.Background(), 7, workoutAt(day.AddDate(0, 0, i)))
	}
	// Five-day gap resets the streak but not the persisted best.
	e.Evaluate(context.Background(), 7, workoutAt(day.AddDate(0, 0, 7)))

	row := store.rows[5]
	if row.Streak != 1 {
		t.Errorf("after gap: want streak=1, got %d", row.Streak)
	}
	if row.Current != 3 {
		t.Errorf("persisted current decreased: want 3, got %d", row.Current)
	}
}

// ─── Entry points ───────────────────────────────────────────────────────────

func TestRecordEventValidation(t *testing.T) {
	store := newFakeStore()
	e := newTestEngine(&fakeCatalog{}, store, &fakeNotifier{})
	ctx := context.Background()

	if _, err := e.RecordWorkoutEvent(ctx, 7, WorkoutEvent{TotalExercises: 0, CompletedAt: testNow}); err == nil {
		t.Error("workout with zero total exercises should be rejected")
	}
	if _, err := e.RecordWorkoutEvent(ctx, 7, WorkoutEvent{TotalExercises: 3, ExercisesCompleted: 5, CompletedAt: testNow}); err == nil {
		t.Error("completed > total should be rejected")
	}
	if _, err := e.RecordSocialEvent(ctx, 7, SocialEvent{Kind: "wave", Count: 1}); err == nil {
		t.Error("unknown social kind should be rejected")
	}
	if _, err := e.RecordSocialEvent(ctx, 7, SocialEvent{Kind: models.ReactionLike, Count: 0}); err == nil {
		t.Error("non-positive count should be rejected")
	}
	if _, err := e.RecordProgressEvent(ctx, 7, ProgressEvent{Kind: "mood"}); err == nil {
		t.Error("unknown progress kind should be rejected")
	}
	if store.upserts != 0 {
		t.Errorf("invalid events caused %d writes", store.upserts)
	}
}

func TestTargetSnapshotTracksCatalog(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{defs: []models.Achievement{
		def(2, "Workout Warrior", models.RuleWorkoutCount, 5, 100),
	}}
	e := newTestEngine(catalog, store, &fakeNotifier{})

	e.Evaluate(context.Background(), 7, workoutAt(testNow))
	if store.rows[2].Target != 5 {
		t.Fatalf("target snapshot: want 5, got %d", store.rows[2].Target)
	}

	// Admin raises the bar; the next write refreshes the snapshot.
	catalog.defs[0].Target = 10
	e.Evaluate(context.Background(), 7, workoutAt(testNow))
	if store.rows[2].Target != 10 {
		t.Errorf("target snapshot not refreshed: want 10, got %d", store.rows[2].Target)
	}
}
