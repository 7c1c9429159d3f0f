// handlers/admin/users.go
package admin

import (
	"github.com/gofiber/fiber/v2"

	"fitlog/database"
	"fitlog/models"
)

// GetUsers lists accounts for the admin console.
func GetUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	db := database.GetDB()
	var users []models.User
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	var total int64
	db.Model(&models.User{}).Count(&total)

	return c.JSON(fiber.Map{"success": true, "users": users, "total": total})
}

// GetUser returns one account.
func GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// BanUser toggles the banned flag.
func BanUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req struct {
		Banned bool `json:"banned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	res := db.Model(&models.User{}).Where("id = ?", id).Update("is_banned", req.Banned)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update user"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "banned": req.Banned})
}

// DeleteUser removes an account.
func DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	if err := db.Delete(&models.User{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}
