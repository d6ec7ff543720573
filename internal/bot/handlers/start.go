package handlers

import (
	"context"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/bot/keyboard"
	"github.com/winterfair/fairbot/internal/user"
	"github.com/winterfair/fairbot/pkg/logger"
)

// NewStartHandler builds the /start onboarding handler.
func NewStartHandler(users *user.Service, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c.Sender() == nil {
			log.Warn("start handler invoked without sender")
			return nil
		}

		ctx := logger.WithCorrelationID(context.Background())

		visitor, err := users.GetOrCreate(ctx, c.Sender().ID)
		if err != nil {
			return err
		}

		name := c.Sender().FirstName
		if name == "" {
			name = "гость"
		}

		text := fmt.Sprintf(
			"🎡 Зимняя ярмарка\n\n"+
				"Привет, %s! Добро пожаловать!\n\n"+
				"Ты — помощник на зимней ярмарке. Выполняй задания в павильонах, "+
				"зарабатывай монеты и собирай коллекцию зимних фактов.\n\n"+
				"💰 Твой баланс: %d монет",
			name, visitor.Coins,
		)

		return c.Send(text, kb.MainMenu())
	}
}

// NewMenuHandler builds the main menu callback handler.
func NewMenuHandler(users *user.Service, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c.Sender() == nil {
			return nil
		}

		ctx := logger.WithCorrelationID(context.Background())

		visitor, err := users.GetOrCreate(ctx, c.Sender().ID)
		if err != nil {
			return err
		}

		text := fmt.Sprintf(
			"🎡 Зимняя ярмарка\n\nЧем займёмся?\n\n💰 Баланс: %d монет",
			visitor.Coins,
		)

		return editScreen(c, text, kb.MainMenu())
	}
}

// editScreen replaces the current game message, tolerating the
// no-op edit Telegram rejects, and acknowledges the callback.
func editScreen(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil && !isNotModified(err) {
		return err
	}

	// Ack is best-effort: the purchase flow answers the query itself.
	_ = c.Respond(&telebot.CallbackResponse{})
	return nil
}
