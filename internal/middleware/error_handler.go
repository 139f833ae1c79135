package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrorLogLimit caps the Redis error log shown by /health/errors.
const ErrorLogLimit = 50

// ErrorEntry is one record in the Redis error log.
type ErrorEntry struct {
	Time    time.Time `json:"time"`
	TraceID string    `json:"trace_id"`
	Method  string    `json:"method"`
	Path    string    `json:"path"`
	Status  int       `json:"status"`
	Message string    `json:"message"`
}

// NewErrorHandler returns the global error handler. 5xx errors are logged and,
// when rdb is set, pushed onto the capped error log.
func NewErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("request failed")
			if rdb != nil {
				RecordError(c.UserContext(), rdb, ErrorEntry{
					Time:    time.Now().UTC(),
					TraceID: GetTraceID(c),
					Method:  c.Method(),
					Path:    c.Path(),
					Status:  code,
					Message: err.Error(),
				})
			}
		}
		return response.Error(c, message, code, nil)
	}
}

// RecordError pushes e onto the error log, keeping the newest ErrorLogLimit entries.
func RecordError(ctx context.Context, rdb *redis.Client, e ErrorEntry) {
	b, err := json.Marshal(e)
	if err != nil {
		return
	}
	_, err = rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, KeyErrorLog, b)
		p.LTrim(ctx, KeyErrorLog, 0, ErrorLogLimit-1)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("error log write failed")
	}
}
