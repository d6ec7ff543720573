package middleware

import (
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/bot/handlers"
	"github.com/winterfair/fairbot/internal/bot/keyboard"
	"github.com/winterfair/fairbot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting
// them to Prometheus. Callback payloads are reduced to their prefix to
// keep the label cardinality bounded.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordCallback(extractPrefix(c), status, time.Since(start))

		return err
	}
}

func extractPrefix(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if cb := c.Callback(); cb != nil && cb.Data != "" {
		prefix, _, err := keyboard.DecodeCallback(strings.TrimSpace(cb.Data))
		if err != nil {
			return "unknown"
		}
		return prefix
	}

	if text := c.Text(); text != "" {
		if strings.HasPrefix(text, "/") {
			return text
		}
		return "text"
	}

	return "unknown"
}
