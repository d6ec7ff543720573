package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/bot/handlers"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/user"
)

// RecoveryMiddleware catches panics, reports them via the centralized
// handler and notifies the user.
func RecoveryMiddleware(log *slog.Logger, errHandler *apperrors.Handler) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered in handler", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))

					userMsg := "⚠️ Что-то пошло не так. Попробуйте позже."
					if errHandler != nil {
						appErr := apperrors.NewDatabaseError(fmt.Errorf("panic recovered: %v", r))
						if msg, _ := errHandler.Handle(context.Background(), appErr); msg != "" {
							userMsg = msg
						}
					}

					if c != nil {
						if sendErr := c.Send(userMsg); sendErr != nil {
							log.Error("failed to notify user about panic", slog.Any("error", sendErr))
						}
					}

					err = nil
				}
			}()

			return next(c)
		}
	}
}

// ErrorHandlingMiddleware centralizes error reporting and user messaging.
// Callback failures surface as popup alerts so the game screen stays put;
// message failures get a plain reply.
func ErrorHandlingMiddleware(errHandler *apperrors.Handler) handlers.Middleware {
	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			userMsg := "Произошла ошибка. Попробуйте позже"
			if errHandler != nil {
				msg, _ := errHandler.Handle(context.Background(), err)
				if msg == "" {
					// Transient render failures are logged and swallowed.
					if c != nil && c.Callback() != nil {
						_ = c.Respond(&telebot.CallbackResponse{})
					}
					return nil
				}
				userMsg = msg
			}

			if c == nil {
				return nil
			}

			if c.Callback() != nil {
				_ = c.Respond(&telebot.CallbackResponse{Text: userMsg, ShowAlert: true})
				return nil
			}

			_ = c.Send(userMsg)
			return nil
		}
	}
}

// LoggingMiddleware logs basic telemetry about incoming updates.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			start := time.Now()
			userID := int64(0)
			if c != nil && c.Sender() != nil {
				userID = c.Sender().ID
			}

			action := ""
			if c != nil {
				if cb := c.Callback(); cb != nil {
					action = cb.Data
				} else {
					action = c.Text()
				}
			}

			err := next(c)
			log.Info("handled update",
				slog.Int64("user_id", userID),
				slog.String("action", action),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)

			return err
		}
	}
}

// AuthMiddleware ensures each incoming update has a visitor record before
// any handler runs.
func AuthMiddleware(users *user.Service, log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			if users == nil || c == nil || c.Sender() == nil {
				return next(c)
			}

			if _, err := users.GetOrCreate(context.Background(), c.Sender().ID); err != nil {
				log.Error("failed to resolve visitor", slog.Int64("user_id", c.Sender().ID), slog.Any("error", err))
				return err
			}

			return next(c)
		}
	}
}
