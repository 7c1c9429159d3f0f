package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-that-is-at-least-32-chars!!"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func authedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware, func(c *fiber.Ctx) error {
		id, err := GetUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user_id": id, "is_trainer": IsTrainer(c)})
	})
	return app
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := authedApp()

	token := signToken(t, jwt.MapClaims{
		"user_id":    float64(7),
		"username":   "lifter",
		"is_trainer": true,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var body struct {
		UserID    uint `json:"user_id"`
		IsTrainer bool `json:"is_trainer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.UserID != 7 || !body.IsTrainer {
		t.Errorf("claims not propagated: %+v", body)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := authedApp()

	expired := signToken(t, jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forged, err := otherKey.SignedString([]byte("some-entirely-different-signing-key!!"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", 401},
		{"not bearer", "Basic dXNlcjpwYXNz", 401},
		{"garbage token", "Bearer not.a.jwt", 401},
		{"expired token", "Bearer " + expired, 401},
		{"wrong signature", "Bearer " + forged, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("want %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestAdminAuthMiddlewareRequiresAdminClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := fiber.New()
	app.Get("/admin", AdminAuthMiddleware, func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	regular := signToken(t, jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	admin := signToken(t, jwt.MapClaims{
		"user_id":  float64(1),
		"is_admin": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+regular)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("non-admin: want 403, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("admin: want 200, got %d", resp.StatusCode)
	}
}

func TestWebSocketAuthFallsBackToAnonymous(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := fiber.New()
	app.Get("/ws", WebSocketAuthMiddleware, func(c *fiber.Ctx) error {
		if c.Locals("userId") == nil {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"anonymous": false})
	})

	req := httptest.NewRequest("GET", "/ws", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("anonymous upgrade should pass through, got %d", resp.StatusCode)
	}

	var body map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body["anonymous"] {
		t.Error("expected anonymous connection without a token")
	}
}
