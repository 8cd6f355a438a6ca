// internal/transport/http/account.go
package http

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Athycodz/CoMpliment-Walll/internal/middleware"
	"github.com/Athycodz/CoMpliment-Walll/internal/service"
	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

const maxAvatarSize = 5 * 1024 * 1024 // 5MB

// Register creates the identity-provider account and the local profile row in
// one call. The password never touches our database.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a valid email is required"})
	case len(req.Password) < 6:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password must be at least 6 characters"})
	case req.Username == "":
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username is required"})
	case req.Age < 13 || req.Age > 120:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "age must be between 13 and 120"})
	}

	uid, err := h.provider.CreateAccount(c.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		log.Printf("❌ [SIGNUP] Account creation for %s failed: %v", req.Email, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create account"})
	}

	user, err := h.svc.CreateProfile(c.Context(), uid, req.Username, req.Email, req.Age)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "username is already taken"})
		}
		log.Printf("❌ [SIGNUP] Profile for uid=%s failed: %v", uid, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create profile"})
	}

	log.Printf("✅ [SIGNUP] New member @%s", user.Username)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "user": user})
}

// Me returns the caller's own profile row.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: login required"})
	}

	user, err := h.svc.GetUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
		}
		log.Printf("❌ Me: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch profile"})
	}
	return c.JSON(user)
}

// UploadAvatar accepts a multipart image and stores it in R2. Returns 503 when
// the deployment has no R2 bucket configured.
func (h *Handler) UploadAvatar(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: login required"})
	}
	if h.r2 == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "avatar storage is not configured"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if fileHeader.Size > maxAvatarSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar must be 5MB or smaller"})
	}
	if !isImageFile(fileHeader.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar must be a jpg, png, gif or webp image"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("❌ UploadAvatar open: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read upload"})
	}
	defer file.Close()

	url, err := h.r2.UploadAvatar(c.Context(), file, fileHeader.Filename, userID)
	if err != nil {
		log.Printf("❌ UploadAvatar upload for uid=%s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store avatar"})
	}

	if err := h.svc.SetAvatarURL(c.Context(), userID, url); err != nil {
		log.Printf("❌ UploadAvatar save url for uid=%s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save avatar"})
	}

	return c.JSON(fiber.Map{"status": "success", "avatar_url": url})
}

// RegisterDeviceToken stores a push registration for the caller's device.
func (h *Handler) RegisterDeviceToken(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: login required"})
	}

	var req models.DeviceTokenRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is required"})
	}

	if err := h.svc.RegisterDeviceToken(c.Context(), userID, req.Token, req.Platform); err != nil {
		log.Printf("❌ RegisterDeviceToken: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register device token"})
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// UnregisterDeviceToken removes a push registration, typically on logout.
func (h *Handler) UnregisterDeviceToken(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: login required"})
	}

	var req models.DeviceTokenRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is required"})
	}

	if err := h.svc.UnregisterDeviceToken(c.Context(), userID, req.Token); err != nil {
		log.Printf("❌ UnregisterDeviceToken: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to remove device token"})
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func isImageFile(fileName string) bool {
	switch strings.ToLower(fileName[strings.LastIndex(fileName, ".")+1:]) {
	case "jpg", "jpeg", "png", "gif", "webp":
		return true
	}
	return false
}
