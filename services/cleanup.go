// services/cleanup.go
package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"fitlog/models"
)

// CleanupService removes abandoned guest accounts on a timer.
type CleanupService struct {
	db       *gorm.DB
	maxAge   time.Duration
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewCleanupService(db *gorm.DB, maxAge, interval time.Duration) *CleanupService {
	return &CleanupService{
		db:       db,
		maxAge:   maxAge,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background worker.
func (s *CleanupService) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupStaleGuests(); err != nil {
					log.Printf("guest cleanup failed: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop shuts the worker down and waits for it to exit.
func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}

// CleanupStaleGuests deletes guest users with no activity past the max age.
// Their workout and progress rows go with them.
func (s *CleanupService) CleanupStaleGuests() error {
	cutoff := time.Now().Add(-s.maxAge)

	var stale []models.User
	if err := s.db.Where("is_guest = ? AND last_activity < ?", true, cutoff).Find(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, len(stale))
	for i, u := range stale {
		ids[i] = u.ID
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.AchievementProgress{}, &models.Workout{}, &models.Meal{},
			&models.BodyEntry{}, &models.Reaction{}, &models.Comment{},
			&models.Subscription{},
		} {
			if err := tx.Where("user_id IN ?", ids).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("follower_id IN ? OR followee_id IN ?", ids, ids).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, ids).Error; err != nil {
			return err
		}
		log.Printf("🧹 removed %d stale guest accounts", len(ids))
		return nil
	})
}
