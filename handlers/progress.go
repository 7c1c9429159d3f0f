// handlers/progress.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fitlog/database"
	"fitlog/middleware"
	"fitlog/models"
	"fitlog/services"
)

type LogEntryRequest struct {
	Kind         string  `json:"kind"` // weight, measurements, daily
	WeightKg     float64 `json:"weight_kg"`
	ChestCm      float64 `json:"chest_cm"`
	WaistCm      float64 `json:"waist_cm"`
	HipsCm       float64 `json:"hips_cm"`
	Note         string  `json:"note"`
	GoalAchieved bool    `json:"goal_achieved"`
}

// LogBodyEntry records a body-progress entry and feeds the achievement
// engine. For weight entries, reaching the configured weight goal counts as
// goal achievement even when the client doesn't flag it.
func LogBodyEntry(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req LogEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	event := services.ProgressEvent{Kind: req.Kind, GoalAchieved: req.GoalAchieved}
	if err := event.Validate(); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	if req.Kind == models.EntryWeight && !event.GoalAchieved && req.WeightKg > 0 {
		var user models.User
		if err := db.First(&user, userID).Error; err == nil {
			if user.WeightGoalKg > 0 && req.WeightKg <= user.WeightGoalKg {
				event.GoalAchieved = true
			}
		}
	}

	entry := models.BodyEntry{
		UserID:       userID,
		Kind:         req.Kind,
		WeightKg:     req.WeightKg,
		ChestCm:      req.ChestCm,
		WaistCm:      req.WaistCm,
		HipsCm:       req.HipsCm,
		Note:         req.Note,
		GoalAchieved: event.GoalAchieved,
	}
	if err := db.Create(&entry).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record entry"})
	}

	results, evalErr := engine.RecordProgressEvent(c.Context(), userID, event)
	awardPoints(userID, results)

	response := fiber.Map{
		"success":          true,
		"entry":            entry,
		"new_achievements": unlockedFrom(results),
	}
	if evalErr != nil {
		response["achievement_errors"] = evalErr.Error()
	}
	return c.Status(201).JSON(response)
}

// GetBodyEntries returns progress history, optionally filtered by kind.
func GetBodyEntries(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 500 {
		limit = 100
	}

	db := database.GetDB()
	q := db.Where("user_id = ?", userID)
	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var entries []models.BodyEntry
	if err := q.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch entries"})
	}

	return c.JSON(fiber.Map{"success": true, "entries": entries, "count": len(entries)})
}
