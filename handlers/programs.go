// handlers/programs.go
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitlog/database"
	"fitlog/middleware"
	"fitlog/models"
)

type CreateProgramRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Weeks       int    `json:"weeks"`
	Level       string `json:"level"`
}

// CreateProgram publishes a new training program. Trainers only.
func CreateProgram(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	if !middleware.IsTrainer(c) {
		return c.Status(403).JSON(fiber.Map{"error": "Only trainers can create programs"})
	}

	var req CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}
	if req.Weeks <= 0 {
		req.Weeks = 4
	}
	switch req.Level {
	case "":
		req.Level = "beginner"
	case "beginner", "intermediate", "advanced":
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid level"})
	}

	program := models.Program{
		TrainerID:   userID,
		Title:       req.Title,
		Description: req.Description,
		Weeks:       req.Weeks,
		Level:       req.Level,
		IsPublished: true,
	}

	db := database.GetDB()
	if err := db.Create(&program).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create program"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "program": program})
}

// GetPrograms lists published programs, most subscribed first.
func GetPrograms(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 30)
	if limit < 1 || limit > 100 {
		limit = 30
	}

	db := database.GetDB()
	q := db.Preload("Trainer").Where("is_published = ?", true)
	if level := c.Query("level"); level != "" {
		q = q.Where("level = ?", level)
	}

	var programs []models.Program
	if err := q.Order("subscriber_count DESC, created_at DESC").Limit(limit).
		Find(&programs).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch programs"})
	}

	return c.JSON(fiber.Map{"success": true, "programs": programs, "count": len(programs)})
}

// GetProgram returns one program.
func GetProgram(c *fiber.Ctx) error {
	programID, err := c.ParamsInt("id")
	if err != nil || programID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid program id"})
	}

	db := database.GetDB()
	var program models.Program
	if err := db.Preload("Trainer").First(&program, programID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Program not found"})
	}

	return c.JSON(fiber.Map{"success": true, "program": program})
}

// SubscribeToProgram enrolls the caller.
func SubscribeToProgram(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	programID, err := c.ParamsInt("id")
	if err != nil || programID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid program id"})
	}

	db := database.GetDB()
	var program models.Program
	if err := db.First(&program, programID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Program not found"})
	}
	if !program.IsPublished {
		return c.Status(404).JSON(fiber.Map{"error": "Program not found"})
	}

	sub := models.Subscription{UserID: userID, ProgramID: uint(programID), StartedAt: time.Now()}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to subscribe"})
	}
	if res.RowsAffected > 0 {
		db.Model(&models.Program{}).Where("id = ?", programID).
			Update("subscriber_count", gorm.Expr("subscriber_count + 1"))
	}

	return c.Status(201).JSON(fiber.Map{"success": true})
}

// UnsubscribeFromProgram drops the caller's enrollment.
func UnsubscribeFromProgram(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	programID, err := c.ParamsInt("id")
	if err != nil || programID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid program id"})
	}

	db := database.GetDB()
	res := db.Where("user_id = ? AND program_id = ?", userID, programID).Delete(&models.Subscription{})
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to unsubscribe"})
	}
	if res.RowsAffected > 0 {
		db.Model(&models.Program{}).Where("id = ? AND subscriber_count > 0", programID).
			Update("subscriber_count", gorm.Expr("subscriber_count - 1"))
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetMySubscriptions lists programs the caller is enrolled in.
func GetMySubscriptions(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var subs []models.Subscription
	if err := db.Preload("Program").Preload("Program.Trainer").
		Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subscriptions"})
	}

	return c.JSON(fiber.Map{"success": true, "subscriptions": subs, "count": len(subs)})
}
