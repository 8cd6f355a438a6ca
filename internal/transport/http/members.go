// internal/transport/http/members.go
package http

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetMembers serves the directory grid plus the aggregate stats footer.
// ?q= narrows by case-insensitive substring on username or email.
func (h *Handler) GetMembers(c *fiber.Ctx) error {
	dir, err := h.svc.Members(c.Context(), c.Query("q"))
	if err != nil {
		log.Printf("❌ GetMembers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch members"})
	}
	return c.JSON(dir)
}
