// internal/transport/http/handlers.go
package http

import (
	"github.com/Athycodz/CoMpliment-Walll/internal/auth"
	"github.com/Athycodz/CoMpliment-Walll/internal/service"
	"github.com/Athycodz/CoMpliment-Walll/utils"
)

type Handler struct {
	svc      *service.WallService
	provider *auth.Provider
	// r2 is optional; nil disables avatar uploads.
	r2 *utils.AvatarR2Client
}

func NewHandler(svc *service.WallService, provider *auth.Provider, r2 *utils.AvatarR2Client) *Handler {
	return &Handler{svc: svc, provider: provider, r2: r2}
}
