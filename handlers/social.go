// handlers/social.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitlog/database"
	"fitlog/middleware"
	"fitlog/models"
	"fitlog/services"
)

// FollowUser makes the caller follow the member in the path.
func FollowUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	targetID, err := c.ParamsInt("id")
	if err != nil || targetID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}
	if uint(targetID) == userID {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot follow yourself"})
	}

	db := database.GetDB()

	var target models.User
	if err := db.First(&target, targetID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	follow := models.Follow{FollowerID: userID, FolloweeID: uint(targetID)}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to follow"})
	}
	if res.RowsAffected > 0 {
		db.Model(&models.User{}).Where("id = ?", targetID).
			Update("follower_count", gorm.Expr("follower_count + 1"))
		db.Model(&models.User{}).Where("id = ?", userID).
			Update("following_count", gorm.Expr("following_count + 1"))
	}

	return c.JSON(fiber.Map{"success": true})
}

// UnfollowUser removes a follow edge.
func UnfollowUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	targetID, err := c.ParamsInt("id")
	if err != nil || targetID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	res := db.Where("follower_id = ? AND followee_id = ?", userID, targetID).Delete(&models.Follow{})
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to unfollow"})
	}
	if res.RowsAffected > 0 {
		db.Model(&models.User{}).Where("id = ? AND follower_count > 0", targetID).
			Update("follower_count", gorm.Expr("follower_count - 1"))
		db.Model(&models.User{}).Where("id = ? AND following_count > 0", userID).
			Update("following_count", gorm.Expr("following_count - 1"))
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetFollowers lists members following the user in the path.
func GetFollowers(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil || targetID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var follows []models.Follow
	if err := db.Preload("Follower").Where("followee_id = ?", targetID).Find(&follows).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch followers"})
	}

	users := make([]UserInfo, 0, len(follows))
	for _, f := range follows {
		if f.Follower != nil {
			users = append(users, userInfo(f.Follower))
		}
	}
	return c.JSON(fiber.Map{"success": true, "followers": users, "count": len(users)})
}

// GetFollowing lists members the user in the path follows.
func GetFollowing(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil || targetID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var follows []models.Follow
	if err := db.Preload("Followee").Where("follower_id = ?", targetID).Find(&follows).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch following"})
	}

	users := make([]UserInfo, 0, len(follows))
	for _, f := range follows {
		if f.Followee != nil {
			users = append(users, userInfo(f.Followee))
		}
	}
	return c.JSON(fiber.Map{"success": true, "following": users, "count": len(users)})
}

type CreatePostRequest struct {
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

// CreatePost publishes a progress update to the feed.
func CreatePost(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Body == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Post body is required"})
	}

	post := models.Post{UserID: userID, Body: req.Body, ImageURL: req.ImageURL}
	db := database.GetDB()
	if err := db.Create(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create post"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "post": post})
}

// GetFeed returns recent posts from members the caller follows, plus their
// own, newest first.
func GetFeed(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 30)
	if limit < 1 || limit > 100 {
		limit = 30
	}
	offset := c.QueryInt("offset", 0)

	db := database.GetDB()
	var posts []models.Post
	if err := db.Preload("User").
		Where("user_id = ? OR user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)", userID, userID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch feed"})
	}

	return c.JSON(fiber.Map{"success": true, "posts": posts, "count": len(posts)})
}

type ReactRequest struct {
	Kind string `json:"kind"` // like, inspire
}

// ReactToPost records a like/inspire and advances the post author's social
// achievements. Duplicate reactions (same user, post, kind) are ignored.
func ReactToPost(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := c.ParamsInt("id")
	if err != nil || postID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid post id"})
	}

	var req ReactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	event := services.SocialEvent{Kind: req.Kind, Count: 1}
	if err := event.Validate(); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Post not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch post"})
	}

	reaction := models.Reaction{PostID: uint(postID), UserID: userID, Kind: req.Kind}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&reaction)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to react"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(fiber.Map{"success": true, "duplicate": true})
	}

	counter := "like_count"
	if req.Kind == models.ReactionInspire {
		counter = "inspire_count"
	}
	db.Model(&models.Post{}).Where("id = ?", postID).
		Update(counter, gorm.Expr(counter+" + 1"))

	// Reactions advance the author's achievements, not the reactor's.
	// Self-reactions don't count.
	response := fiber.Map{"success": true}
	if post.UserID != userID {
		results, evalErr := engine.RecordSocialEvent(c.Context(), post.UserID, event)
		awardPoints(post.UserID, results)
		if evalErr != nil {
			response["achievement_errors"] = evalErr.Error()
		}
	}

	return c.Status(201).JSON(response)
}

type CommentRequest struct {
	Body string `json:"body"`
}

// CommentOnPost adds a comment.
func CommentOnPost(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := c.ParamsInt("id")
	if err != nil || postID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid post id"})
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil || req.Body == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Comment body is required"})
	}

	db := database.GetDB()

	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Post not found"})
	}

	comment := models.Comment{PostID: uint(postID), UserID: userID, Body: req.Body}
	if err := db.Create(&comment).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to comment"})
	}
	db.Model(&models.Post{}).Where("id = ?", postID).
		Update("comment_count", gorm.Expr("comment_count + 1"))

	return c.Status(201).JSON(fiber.Map{"success": true, "comment": comment})
}

// GetComments lists a post's comments, oldest first.
func GetComments(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid post id"})
	}

	db := database.GetDB()
	var comments []models.Comment
	if err := db.Preload("User").Where("post_id = ?", postID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch comments"})
	}

	return c.JSON(fiber.Map{"success": true, "comments": comments, "count": len(comments)})
}
