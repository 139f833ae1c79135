package middleware

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"portfolio-backend/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Sessions are created by the auth service; this API only reads them.
const (
	SessionCookieName  = "portfolio.sid"
	SessionHeader      = "X-Session-Id"
	SessionRedisPrefix = "session:"
	sessionTTL         = 24 * time.Hour
)

// Session loads the session user from Redis into Locals("user") and slides
// the session expiry on every authenticated request. Sessions carrying a
// role this API does not know are ignored. The session id comes
// from the cookie, or from the X-Session-Id header for non-browser clients.
func Session(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := sessionID(c)
		if sid == "" {
			return c.Next()
		}
		ctx := c.UserContext()
		key := SessionRedisPrefix + sid
		b, err := rdb.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			return c.Next()
		case err != nil:
			log.Warn().Err(err).Str("trace_id", GetTraceID(c)).Msg("session lookup failed")
			return c.Next()
		}

		var data map[string]interface{}
		if err := json.Unmarshal(b, &data); err != nil {
			log.Warn().Err(err).Str("trace_id", GetTraceID(c)).Msg("session payload is not JSON")
			return c.Next()
		}
		u, ok := data["user"].(map[string]interface{})
		if !ok {
			return c.Next()
		}
		if role := asString(u["role"]); !constants.IsValidRole(role) {
			log.Warn().Str("trace_id", GetTraceID(c)).Str("role", role).Msg("session has unknown role")
			return c.Next()
		}
		c.Locals(userLocal, u)
		_ = rdb.Expire(ctx, key, sessionTTL).Err()
		return c.Next()
	}
}

// sessionID strips the "s:" prefix and signature suffix of signed cookies.
func sessionID(c *fiber.Ctx) string {
	sid := c.Cookies(SessionCookieName)
	if sid == "" {
		sid = c.Get(SessionHeader)
	}
	if strings.HasPrefix(sid, "s:") {
		sid = strings.SplitN(sid[2:], ".", 2)[0]
	}
	return strings.TrimSpace(sid)
}
