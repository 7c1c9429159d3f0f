// handlers/uploads.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fitlog/middleware"
)

const maxUploadBytes = 4 * 1024 * 1024

// UploadImage stores a progress-photo blob and returns its public URL.
func UploadImage(c *fiber.Ctx) error {
	if _, err := middleware.GetUserID(c); err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Missing image file"})
	}
	if file.Size > maxUploadBytes {
		return c.Status(413).JSON(fiber.Map{"error": "Image too large (4MB max)"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read upload"})
	}
	defer src.Close()

	url, err := uploads.Save(file.Filename, src)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store upload"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "url": url})
}
