package middleware

import (
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

// SessionUser is the shape the auth service stores under "user".
type SessionUser struct {
	UserID   string  `json:"user_id"`
	Fullname string  `json:"fullname"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	OrgID    *string `json:"org_id"`
}

// RequireAuth ensures a user is in the session. Returns 401 with standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(userLocal) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// CurrentUser decodes the session user.
func CurrentUser(c *fiber.Ctx) (SessionUser, bool) {
	m, ok := c.Locals(userLocal).(map[string]interface{})
	if !ok {
		return SessionUser{}, false
	}
	u := SessionUser{
		UserID:   asString(m["user_id"]),
		Fullname: asString(m["fullname"]),
		Email:    asString(m["email"]),
		Role:     asString(m["role"]),
	}
	if org := asString(m["org_id"]); org != "" {
		u.OrgID = &org
	}
	return u, true
}

// ActorOrgID returns the organisation of the session user.
func ActorOrgID(c *fiber.Ctx) (uuid.UUID, bool) {
	u, ok := CurrentUser(c)
	if !ok || u.OrgID == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*u.OrgID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ActorUserID returns the session user's id, or nil when it is not a UUID.
func ActorUserID(c *fiber.Ctx) *uuid.UUID {
	u, ok := CurrentUser(c)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(u.UserID)
	if err != nil {
		return nil
	}
	return &id
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
