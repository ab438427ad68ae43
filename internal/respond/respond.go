// Package respond provides the single JSON error envelope used by every
// endpoint: {"success": false, "error": ..., "message": ...}.
package respond

import "github.com/gofiber/fiber/v2"

// Error writes the normalized error envelope with the given status. The
// error string is machine-oriented, the message is for humans.
func Error(c *fiber.Ctx, status int, err error, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"message": message,
	})
}
