// handlers/notifications.go
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RequireWebSocketUpgrade gates the /ws route to upgrade requests.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NotificationsSocket streams achievement unlocks to the connected client.
// Anonymous connections are accepted but receive nothing.
func NotificationsSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID := resolveSocketUser(conn.Locals("userId"))
		if userID == 0 {
			conn.WriteJSON(fiber.Map{"type": "error", "error": "authentication required"})
			conn.Close()
			return
		}

		ch := hub.Subscribe(userID)
		defer hub.Unsubscribe(userID, ch)

		// Reader goroutine: we ignore client messages but need the read
		// loop to notice a closed connection.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case n, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteJSON(n); err != nil {
					log.Printf("notification write failed for user %d: %v", userID, err)
					return
				}
			case <-closed:
				return
			}
		}
	})
}

func resolveSocketUser(v interface{}) uint {
	switch id := v.(type) {
	case float64:
		return uint(id)
	case uint:
		return id
	default:
		return 0
	}
}
