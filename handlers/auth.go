// handlers/auth.go
package handlers

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fitlog/database"
	"fitlog/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsTrainer bool   `json:"is_trainer"`
}

type GuestLoginRequest struct {
	GuestName string `json:"guest_name,omitempty"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token,omitempty"`
	User    UserInfo `json:"user,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type UserInfo struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"`
	IsTrainer   bool      `json:"is_trainer"`
	TotalPoints int       `json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
}

func userInfo(u *models.User) UserInfo {
	email := ""
	if u.Email != nil {
		email = *u.Email
	}
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Email:       email,
		DisplayName: u.DisplayName,
		IsGuest:     u.IsGuest,
		IsTrainer:   u.IsTrainer,
		TotalPoints: u.TotalPoints,
		CreatedAt:   u.CreatedAt,
	}
}

func generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"username":   user.Username,
		"is_guest":   user.IsGuest,
		"is_admin":   user.IsAdmin,
		"is_trainer": user.IsTrainer,
		"exp":        time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// Register creates a new member account.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}

	if len(req.Username) < 3 || len(req.Password) < 8 {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Username must be 3+ characters and password 8+ characters"})
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return c.Status(409).JSON(AuthResponse{Success: false, Error: "Username already taken"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create account"})
	}

	user := models.User{
		Username:  req.Username,
		Password:  string(hash),
		IsTrainer: req.IsTrainer,
		LastLogin: time.Now(),
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create account"})
	}

	token, err := generateToken(&user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.Status(201).JSON(AuthResponse{Success: true, Token: token, User: userInfo(&user)})
}

// Login authenticates an existing member.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid username or password"})
	}

	if user.IsBanned {
		return c.Status(403).JSON(AuthResponse{Success: false, Error: "Account is banned"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid username or password"})
	}

	user.LastLogin = time.Now()
	db.Model(&user).Update("last_login", user.LastLogin)

	token, err := generateToken(&user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: userInfo(&user)})
}

// GuestLogin creates a throwaway guest session so visitors can try logging
// workouts before registering.
func GuestLogin(c *fiber.Ctx) error {
	var req GuestLoginRequest
	_ = c.BodyParser(&req) // empty body is fine

	db := database.GetDB()

	guestName := req.GuestName
	if guestName == "" {
		guestName = fmt.Sprintf("Guest_%s", uuid.New().String()[:8])
	}
	guestEmail := fmt.Sprintf("guest_%s@fitlog.local", uuid.New().String()[:8])

	user := models.User{
		Username:  guestName,
		Email:     &guestEmail,
		Password:  "",
		IsGuest:   true,
		LastLogin: time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create guest account"})
	}

	token, err := generateToken(&user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.Status(201).JSON(AuthResponse{Success: true, Token: token, User: userInfo(&user)})
}
