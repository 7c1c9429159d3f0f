// handlers/admin/achievements.go
package admin

import (
	"github.com/gofiber/fiber/v2"

	"fitlog/database"
	"fitlog/models"
)

// GetAchievements returns the full catalog.
func GetAchievements(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievements []models.Achievement
	if err := db.Order("id").Find(&achievements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{"success": true, "achievements": achievements})
}

// CreateAchievement adds a catalog definition. A definition whose rule kind
// the engine doesn't recognize is accepted but stays dormant until a deploy
// that understands it.
func CreateAchievement(c *fiber.Ctx) error {
	var achievement models.Achievement
	if err := c.BodyParser(&achievement); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if achievement.Name == "" || achievement.Target <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Name and a positive target are required"})
	}
	if achievement.Points < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Points cannot be negative"})
	}

	db := database.GetDB()
	if err := db.Create(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create achievement"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "achievement": achievement})
}

// UpdateAchievement edits an existing definition.
func UpdateAchievement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid achievement id"})
	}

	db := database.GetDB()
	var achievement models.Achievement
	if err := db.First(&achievement, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
	}

	if err := c.BodyParser(&achievement); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	achievement.ID = uint(id)

	if err := db.Save(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update achievement"})
	}

	return c.JSON(fiber.Map{"success": true, "achievement": achievement})
}

// DeleteAchievement removes a definition. Existing progress rows are kept;
// they simply stop matching anything.
func DeleteAchievement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid achievement id"})
	}

	db := database.GetDB()
	if err := db.Delete(&models.Achievement{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Achievement deleted successfully"})
}
