package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/ratelimit"
)

// RateLimitMiddleware enforces a per-user update budget before updates
// reach the router.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	limit   int
	window  time.Duration
	log     *slog.Logger
}

// NewRateLimitMiddleware constructs the rate-limit middleware.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, limit int, window time.Duration, log *slog.Logger) *RateLimitMiddleware {
	if log == nil {
		log = slog.Default()
	}

	return &RateLimitMiddleware{
		limiter: limiter,
		limit:   limit,
		window:  window,
		log:     log,
	}
}

// Handle returns a telebot middleware enforcing the limit.
func (m *RateLimitMiddleware) Handle(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if m.limiter == nil || m.limit <= 0 {
			return next(c)
		}

		sender := c.Sender()
		if sender == nil {
			return next(c)
		}

		key := fmt.Sprintf("user:%d", sender.ID)
		result, err := m.limiter.Check(context.Background(), key, m.limit, m.window)
		if err != nil && !errors.Is(err, ratelimit.ErrLimitExceeded) {
			// Limiter trouble must not block gameplay.
			m.log.Warn("rate limiter error", slog.Int64("user_id", sender.ID), slog.Any("error", err))
			return next(c)
		}

		if result != nil && !result.Allowed {
			m.log.Warn("rate limit exceeded", slog.Int64("user_id", sender.ID))
			if c.Callback() != nil {
				return c.Respond(&telebot.CallbackResponse{Text: "⏳ Слишком быстро! Подожди немного."})
			}
			return c.Send("⏳ Слишком быстро! Подожди немного.")
		}

		return next(c)
	}
}
