// handlers/achievements.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fitlog/database"
	"fitlog/middleware"
	"fitlog/models"
)

// GetUserAchievements returns the full catalog merged with the caller's
// progress: every definition appears once, locked or not.
func GetUserAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var rows []models.AchievementProgress
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	var catalog []models.Achievement
	if err := db.Order("id").Find(&catalog).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievement catalog"})
	}

	progressByID := make(map[uint]models.AchievementProgress, len(rows))
	for _, row := range rows {
		progressByID[row.AchievementID] = row
	}

	completed := 0
	points := 0
	achievements := make([]fiber.Map, 0, len(catalog))
	for _, def := range catalog {
		entry := fiber.Map{
			"id":          def.ID,
			"name":        def.Name,
			"description": def.Description,
			"category":    def.Category,
			"icon":        def.Icon,
			"target":      def.Target,
			"points":      def.Points,
			"current":     0,
			"completed":   false,
		}

		if row, ok := progressByID[def.ID]; ok {
			entry["current"] = row.Current
			entry["completed"] = row.Completed
			if row.Completed {
				completed++
				points += def.Points
				entry["earned_at"] = row.EarnedAt
			}
		}

		achievements = append(achievements, entry)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(catalog),
		"completed":    completed,
		"points":       points,
	})
}
