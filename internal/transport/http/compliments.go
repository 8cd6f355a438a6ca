// internal/transport/http/compliments.go
package http

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Athycodz/CoMpliment-Walll/internal/middleware"
	"github.com/Athycodz/CoMpliment-Walll/internal/service"
	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

// SendCompliment runs the full submission workflow. Every rejection maps to a
// specific, user-visible reason; nothing is swallowed.
func (h *Handler) SendCompliment(c *fiber.Ctx) error {
	senderID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: login required"})
	}

	var req models.SendComplimentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recipient and message are required"})
	}

	compliment, err := h.svc.Send(c.Context(), senderID, &req)
	if err != nil {
		var quickErr *service.QuickFilterError
		var modErr *service.ModerationError
		switch {
		case errors.Is(err, service.ErrRecipientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No member with that username"})
		case errors.Is(err, service.ErrSelfSend):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "You can't send a compliment to yourself"})
		case errors.Is(err, service.ErrInvalidLength):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Message must be between 10 and 500 characters"})
		case errors.As(err, &quickErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  quickErr.Message,
				"reason": string(quickErr.Reason),
			})
		case errors.As(err, &modErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Your message was rejected by moderation",
				"reason": modErr.Reason,
			})
		default:
			log.Printf("❌ SendCompliment failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send compliment"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Compliment sent successfully!",
		"id":      compliment.ID,
	})
}

// GetInbox returns the caller's compliments, newest first. ?unread=true
// filters the entries; the counts always describe the whole inbox.
func (h *Handler) GetInbox(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: login required"})
	}

	listing, err := h.svc.Inbox(c.Context(), userID, c.QueryBool("unread"))
	if err != nil {
		log.Printf("❌ GetInbox: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch inbox"})
	}
	return c.JSON(listing)
}

// MarkRead flips one compliment's read flag. Calling it on an already-read
// compliment is a no-op success.
func (h *Handler) MarkRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: login required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid compliment id"})
	}

	entry, err := h.svc.MarkRead(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrComplimentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "compliment not found"})
		}
		log.Printf("❌ MarkRead: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to mark as read"})
	}

	return c.JSON(fiber.Map{"status": "success", "compliment": entry})
}
