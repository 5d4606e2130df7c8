package middleware

import (
	"context"
	"encoding/json"
	"time"

	"gfg-stable-backend/internal/pkg/apperr"
	"gfg-stable-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const errorLogSize = 50

// ErrorHandler is the global error handler. Service errors keep their status
// and message; anything unexpected becomes a 500 without internals. 5xx are
// logged and, with redis, pushed onto the health error log.
func ErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"
		var details interface{}

		if ae, ok := apperr.As(err); ok {
			code = ae.Status
			message = ae.Message
			details = ae.Details
		} else if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("trace_id", GetTraceID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", code).
				Msg("request failed")
			recordError(rdb, c, err, code)
		}

		return response.Error(c, message, code, details)
	}
}

func recordError(rdb *redis.Client, c *fiber.Ctx, err error, code int) {
	if rdb == nil {
		return
	}
	entry, _ := json.Marshal(map[string]interface{}{
		"time":     time.Now().UTC(),
		"trace_id": GetTraceID(c),
		"method":   c.Method(),
		"path":     c.OriginalURL(),
		"status":   code,
		"error":    err.Error(),
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pipe := rdb.TxPipeline()
	pipe.LPush(ctx, KeyErrorLog, entry)
	pipe.LTrim(ctx, KeyErrorLog, 0, errorLogSize-1)
	if _, perr := pipe.Exec(ctx); perr != nil {
		log.Warn().Err(perr).Msg("error log not recorded")
	}
}

// statusOf is the status the ErrorHandler will answer with for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if ae, ok := apperr.As(err); ok {
		return ae.Status
	}
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}
	return fiber.StatusInternalServerError
}
