// handlers/workouts.go
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fitlog/database"
	"fitlog/middleware"
	"fitlog/models"
	"fitlog/services"
)

type LogWorkoutRequest struct {
	Name               string     `json:"name"`
	DurationSeconds    int        `json:"duration_seconds"`
	ExercisesCompleted int        `json:"exercises_completed"`
	TotalExercises     int        `json:"total_exercises"`
	CompletedAt        *time.Time `json:"completed_at"`
	IsShared           bool       `json:"is_shared"`
	Notes              string     `json:"notes"`
}

// LogWorkout records a completed session and runs it through the
// achievement engine. Newly unlocked achievements ride back in the response.
func LogWorkout(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req LogWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	completedAt := time.Now()
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}

	event := services.WorkoutEvent{
		DurationSeconds:    req.DurationSeconds,
		ExercisesCompleted: req.ExercisesCompleted,
		TotalExercises:     req.TotalExercises,
		CompletedAt:        completedAt,
		IsShared:           req.IsShared,
	}
	if err := event.Validate(); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	workout := models.Workout{
		UserID:             userID,
		Name:               req.Name,
		DurationSeconds:    req.DurationSeconds,
		ExercisesCompleted: req.ExercisesCompleted,
		TotalExercises:     req.TotalExercises,
		CompletedAt:        completedAt,
		IsShared:           req.IsShared,
		Notes:              req.Notes,
	}
	if err := db.Create(&workout).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record workout"})
	}

	db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"total_workouts": gorm.Expr("total_workouts + ?", 1),
		"total_duration": gorm.Expr("total_duration + ?", req.DurationSeconds),
	})

	results, evalErr := engine.RecordWorkoutEvent(c.Context(), userID, event)
	awardPoints(userID, results)

	response := fiber.Map{
		"success":          true,
		"workout":          workout,
		"new_achievements": unlockedFrom(results),
	}
	if evalErr != nil {
		// Partial evaluation failure: the workout row is saved, some
		// achievement updates are not.
		response["achievement_errors"] = evalErr.Error()
	}
	return c.Status(201).JSON(response)
}

// GetWorkouts returns the caller's workout history, newest first.
func GetWorkouts(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	db := database.GetDB()
	var workouts []models.Workout
	if err := db.Where("user_id = ?", userID).
		Order("completed_at DESC").Limit(limit).Offset(offset).
		Find(&workouts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch workouts"})
	}

	return c.JSON(fiber.Map{"success": true, "workouts": workouts, "count": len(workouts)})
}

// unlockedFrom extracts just-completed achievements for the response body.
func unlockedFrom(results []services.Result) []fiber.Map {
	unlocked := []fiber.Map{}
	for _, r := range results {
		if r.JustCompleted {
			unlocked = append(unlocked, fiber.Map{
				"name":        r.Definition.Name,
				"description": r.Definition.Description,
				"points":      r.Definition.Points,
				"icon":        r.Definition.Icon,
			})
		}
	}
	return unlocked
}

// awardPoints credits achievement points for fresh unlocks.
func awardPoints(userID uint, results []services.Result) {
	total := 0
	for _, r := range results {
		if r.JustCompleted {
			total += r.Definition.Points
		}
	}
	if total == 0 {
		return
	}
	db := database.GetDB()
	db.Model(&models.User{}).Where("id = ?", userID).
		Update("total_points", gorm.Expr("total_points + ?", total))
}
