package auth

import (
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/constants"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers exposes the session user. Sessions are issued elsewhere.
type Handlers struct{}

// GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.UserID == "" {
		log.Info().Str("path", "/auth/me").Str("trace_id", middleware.GetTraceID(c)).Msg("auth/me: no session user")
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	perms := make([]string, 0, len(constants.PermissionRoles))
	for _, p := range []string{constants.ViewData, constants.ManagePortfolio, constants.DeleteRecords} {
		if constants.AllowedRole(p, user.Role) {
			perms = append(perms, p)
		}
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user, "permissions": perms}, nil)
}
