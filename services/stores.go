// services/stores.go
package services

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitlog/models"
)

// GormCatalog serves achievement definitions from the database.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// Definitions returns the full catalog in id order so evaluation walks it
// deterministically.
func (c *GormCatalog) Definitions(ctx context.Context) ([]models.Achievement, error) {
	var defs []models.Achievement
	if err := c.db.WithContext(ctx).Order("id").Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// GormProgressStore persists per-user progress rows.
type GormProgressStore struct {
	db *gorm.DB
}

func NewGormProgressStore(db *gorm.DB) *GormProgressStore {
	return &GormProgressStore{db: db}
}

func (s *GormProgressStore) ForUser(ctx context.Context, userID uint) ([]models.AchievementProgress, error) {
	var rows []models.AchievementProgress
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert inserts or updates by the (user_id, achievement_id) composite key
// in a single statement.
func (s *GormProgressStore) Upsert(ctx context.Context, row *models.AchievementProgress) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current", "target", "completed", "earned_at",
			"streak", "last_workout_at", "updated_at",
		}),
	}).Create(row).Error
}
