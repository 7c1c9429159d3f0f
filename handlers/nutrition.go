// handlers/nutrition.go
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"fitlog/database"
	"fitlog/middleware"
	"fitlog/models"
)

type LogMealRequest struct {
	Name     string     `json:"name"`
	Calories int        `json:"calories"`
	ProteinG float64    `json:"protein_g"`
	CarbsG   float64    `json:"carbs_g"`
	FatG     float64    `json:"fat_g"`
	LoggedAt *time.Time `json:"logged_at"`
}

// LogMeal records one nutrition entry.
func LogMeal(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req LogMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Meal name is required"})
	}
	if req.Calories < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Calories cannot be negative"})
	}

	loggedAt := time.Now()
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}

	meal := models.Meal{
		UserID:   userID,
		Name:     req.Name,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
		LoggedAt: loggedAt,
	}

	db := database.GetDB()
	if err := db.Create(&meal).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record meal"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "meal": meal})
}

// GetMeals returns the caller's nutrition log, newest first.
func GetMeals(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	db := database.GetDB()
	var meals []models.Meal
	if err := db.Where("user_id = ?", userID).
		Order("logged_at DESC").Limit(limit).
		Find(&meals).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch meals"})
	}

	return c.JSON(fiber.Map{"success": true, "meals": meals, "count": len(meals)})
}

// GetDailySummary aggregates today's intake.
func GetDailySummary(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		day = parsed
	}

	type summary struct {
		Calories int     `json:"calories"`
		ProteinG float64 `json:"protein_g"`
		CarbsG   float64 `json:"carbs_g"`
		FatG     float64 `json:"fat_g"`
		Meals    int     `json:"meals"`
	}

	var s summary
	db := database.GetDB()
	if err := db.Model(&models.Meal{}).
		Select("COALESCE(SUM(calories),0) as calories, COALESCE(SUM(protein_g),0) as protein_g, COALESCE(SUM(carbs_g),0) as carbs_g, COALESCE(SUM(fat_g),0) as fat_g, COUNT(*) as meals").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, day, day.AddDate(0, 0, 1)).
		Scan(&s).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	return c.JSON(fiber.Map{"success": true, "date": day.Format("2006-01-02"), "summary": s})
}
