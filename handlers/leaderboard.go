// handlers/leaderboard.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fitlog/database"
	"fitlog/models"
)

type leaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	Avatar        string `json:"avatar"`
	TotalPoints   int    `json:"total_points"`
	TotalWorkouts int    `json:"total_workouts"`
}

// GetLeaderboard ranks members by achievement points.
func GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}

	db := database.GetDB()
	var users []models.User
	if err := db.Where("is_guest = ? AND is_banned = ?", false, false).
		Order("total_points DESC, total_workouts DESC").Limit(limit).
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	entries := make([]leaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = leaderboardEntry{
			Rank:          i + 1,
			UserID:        u.ID,
			Username:      u.Username,
			DisplayName:   u.DisplayName,
			Avatar:        u.Avatar,
			TotalPoints:   u.TotalPoints,
			TotalWorkouts: u.TotalWorkouts,
		}
	}

	return c.JSON(fiber.Map{"success": true, "leaderboard": entries})
}
