// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"fitlog/database"
	"fitlog/models"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}
	return claims, nil
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing or malformed authorization header"})
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("isGuest", claims["is_guest"])
	c.Locals("isTrainer", claims["is_trainer"])

	updateUserActivity(claims["user_id"])

	return c.Next()
}

func AdminAuthMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing or malformed authorization header"})
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	isAdmin, ok := claims["is_admin"].(bool)
	if !ok || !isAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Access denied. Admin privileges required."})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("isAdmin", true)

	return c.Next()
}

// GetUserID resolves the authenticated user. Callers that can run without a
// user (the achievement engine treats "no user" as a no-op) should check the
// error and skip rather than fail.
func GetUserID(c *fiber.Ctx) (uint, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	if id, ok := userID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := userID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid user ID format")
}

func IsTrainer(c *fiber.Ctx) bool {
	v := c.Locals("isTrainer")
	if v == nil {
		return false
	}
	t, ok := v.(bool)
	return ok && t
}

// WebSocketAuthMiddleware validates JWT for websocket upgrades. Falls back
// to the token cookie, then to an anonymous connection.
func WebSocketAuthMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		tokenString = c.Cookies("token")
	}

	if tokenString == "" {
		c.Locals("userId", nil)
		return c.Next()
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		c.Locals("userId", nil)
		return c.Next()
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])

	updateUserActivity(claims["user_id"])

	return c.Next()
}

// updateUserActivity updates the user's last activity timestamp
func updateUserActivity(userID interface{}) {
	if userID == nil {
		return
	}

	db := database.MaybeDB()
	if db == nil {
		return
	}

	var id uint
	switch v := userID.(type) {
	case float64:
		id = uint(v)
	case uint:
		id = v
	default:
		return
	}

	db.Model(&models.User{}).Where("id = ?", id).Update("last_activity", time.Now())
}
