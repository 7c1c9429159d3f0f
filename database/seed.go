// database/seed.go - Achievement catalog seed data
package database

import (
	"log"

	"fitlog/models"
)

// SeedAchievements inserts the default achievement catalog. Existing
// definitions are left untouched, so redeploys never clobber admin edits.
func SeedAchievements() {
	db := GetDB()

	var count int64
	db.Model(&models.Achievement{}).Count(&count)
	if count > 0 {
		return
	}

	seed := []models.Achievement{
		{Name: "First Workout", Description: "Complete your first workout", Category: "workout", Rule: models.RuleFirstWorkout, Target: 1, Points: 10, Icon: "🏋️"},
		{Name: "Workout Warrior", Description: "Complete 50 workouts", Category: "workout", Rule: models.RuleWorkoutCount, Target: 50, Points: 100, Icon: "⚔️"},
		{Name: "Exercise Master", Description: "Complete 500 exercises", Category: "workout", Rule: models.RuleExerciseTotal, Target: 500, Points: 150, Icon: "💪"},
		{Name: "Perfect Form", Description: "Finish every exercise in a workout", Category: "workout", Rule: models.RulePerfectForm, Target: 1, Points: 25, Icon: "✨"},
		{Name: "Consistency King", Description: "Work out 7 days in a row", Category: "workout", Rule: models.RuleStreak, Target: 7, Points: 75, Icon: "👑"},
		{Name: "Time Champion", Description: "Train for 10 hours total", Category: "workout", Rule: models.RuleDurationTotal, Target: 36000, Points: 100, Icon: "⏱️"},
		{Name: "Early Bird", Description: "Complete 10 workouts before 8am", Category: "special", Rule: models.RuleEarlyBird, Target: 10, Points: 50, Icon: "🌅"},
		{Name: "Night Owl", Description: "Complete 10 workouts after 8pm", Category: "special", Rule: models.RuleNightOwl, Target: 10, Points: 50, Icon: "🦉"},
		{Name: "Weekend Warrior", Description: "Complete 20 weekend workouts", Category: "special", Rule: models.RuleWeekend, Target: 20, Points: 60, Icon: "🎯"},
		{Name: "Social Butterfly", Description: "Share 10 workouts", Category: "social", Rule: models.RuleSharedWorkout, Target: 10, Points: 40, Icon: "🦋"},
		{Name: "Community Leader", Description: "Receive 100 likes", Category: "social", Rule: models.RuleLikesTotal, Target: 100, Points: 80, Icon: "🤝"},
		{Name: "Motivator", Description: "Inspire 50 members", Category: "social", Rule: models.RuleInspiresTotal, Target: 50, Points: 80, Icon: "🔥"},
		{Name: "Progress Tracker", Description: "Log 30 daily check-ins", Category: "progress", Rule: models.RuleDailyLog, Target: 30, Points: 60, Icon: "📈"},
		{Name: "Weight Goal Achiever", Description: "Reach your weight goal", Category: "progress", Rule: models.RuleWeightGoal, Target: 1, Points: 120, Icon: "🎖️"},
		{Name: "Measurement Master", Description: "Log 20 measurement entries", Category: "progress", Rule: models.RuleMeasurementCount, Target: 20, Points: 50, Icon: "📏"},
	}

	if err := db.Create(&seed).Error; err != nil {
		log.Printf("❌ Failed to seed achievements: %v", err)
		return
	}
	log.Printf("✅ Seeded %d achievement definitions", len(seed))
}
