// services/ports.go
package services

import (
	"context"

	"fitlog/models"
)

// Catalog reads achievement definitions. Must be side-effect-free.
type Catalog interface {
	Definitions(ctx context.Context) ([]models.Achievement, error)
}

// ProgressStore reads and upserts per-user progress rows.
type ProgressStore interface {
	ForUser(ctx context.Context, userID uint) ([]models.AchievementProgress, error)
	Upsert(ctx context.Context, row *models.AchievementProgress) error
}

// Unlock describes a newly completed achievement.
type Unlock struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// Notifier delivers unlock notices. Delivery is fire-and-forget: a notifier
// failure must never affect persisted progress.
type Notifier interface {
	Unlocked(userID uint, u Unlock)
}
