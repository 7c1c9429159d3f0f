// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"fitlog/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Achievement{},
		&models.AchievementProgress{},
		&models.Workout{},
		&models.Meal{},
		&models.BodyEntry{},
		&models.Follow{},
		&models.Post{},
		&models.Reaction{},
		&models.Comment{},
		&models.Program{},
		&models.Subscription{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()
	SeedAchievements()

	log.Println("✅ All migrations completed successfully")
}

func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_points ON users(total_points DESC)")

	// Workout / nutrition / progress indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_workouts_user_completed ON workouts(user_id, completed_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_meals_user_logged ON meals(user_id, logged_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_body_entries_user_kind ON body_entries(user_id, kind)")

	// Achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievement_progress_user ON achievement_progress(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievement_progress_completed ON achievement_progress(user_id, completed)")

	// Social indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_follows_followee ON follows(followee_id)")

	// Program indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_programs_published ON programs(is_published)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions(user_id)")
}
