// handlers/users.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fitlog/database"
	"fitlog/middleware"
	"fitlog/models"
)

// GetCurrentUser returns the caller's own profile.
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

type UpdateUserRequest struct {
	DisplayName  *string  `json:"display_name"`
	Avatar       *string  `json:"avatar"`
	Bio          *string  `json:"bio"`
	Quote        *string  `json:"quote"`
	WeightGoalKg *float64 `json:"weight_goal_kg"`
}

// UpdateCurrentUser applies partial profile updates.
func UpdateCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Quote != nil {
		updates["quote"] = *req.Quote
	}
	if req.WeightGoalKg != nil {
		if *req.WeightGoalKg < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Weight goal cannot be negative"})
		}
		updates["weight_goal_kg"] = *req.WeightGoalKg
	}
	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No fields to update"})
	}

	db := database.GetDB()
	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	var user models.User
	db.First(&user, userID)
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// SearchUsers finds members by username or display name.
func SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if len(query) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "Query must be at least 2 characters"})
	}

	db := database.GetDB()
	var users []models.User
	if err := db.Where("is_guest = ? AND is_banned = ?", false, false).
		Where("username ILIKE ? OR display_name ILIKE ?", "%"+query+"%", "%"+query+"%").
		Limit(20).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Search failed"})
	}

	results := make([]UserInfo, len(users))
	for i := range users {
		results[i] = userInfo(&users[i])
	}
	return c.JSON(fiber.Map{"success": true, "users": results, "count": len(results)})
}

// GetUserProfile returns a member's public profile.
func GetUserProfile(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil || targetID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, targetID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":              user.ID,
			"username":        user.Username,
			"display_name":    user.DisplayName,
			"avatar":          user.Avatar,
			"bio":             user.Bio,
			"quote":           user.Quote,
			"is_trainer":      user.IsTrainer,
			"total_points":    user.TotalPoints,
			"total_workouts":  user.TotalWorkouts,
			"follower_count":  user.FollowerCount,
			"following_count": user.FollowingCount,
			"created_at":      user.CreatedAt,
		},
	})
}

type ImproveTextRequest struct {
	Kind string `json:"kind"` // bio or quote
	Text string `json:"text"`
}

// ImproveText runs bio/quote copy through the external text-improvement
// service. Any upstream failure surfaces as a generic error.
func ImproveText(c *fiber.Ctx) error {
	if _, err := middleware.GetUserID(c); err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	if textGen == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Text generation is not configured"})
	}

	var req ImproveTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Kind != "bio" && req.Kind != "quote" {
		return c.Status(400).JSON(fiber.Map{"error": "Kind must be bio or quote"})
	}
	if req.Text == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Text is required"})
	}

	improved, err := textGen.Improve(c.Context(), req.Kind, req.Text)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": "Text generation failed"})
	}

	return c.JSON(fiber.Map{"success": true, "text": improved})
}
