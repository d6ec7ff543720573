package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/bot/keyboard"
	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/user"
	"github.com/winterfair/fairbot/pkg/logger"
)

// NewMapHandler builds the fair map screen.
func NewMapHandler(users *user.Service, registry *catalog.Registry, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
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

		pavilions := registry.Pavilions()

		var sb strings.Builder
		sb.WriteString("🗺 Карта ярмарки\n\n")
		for _, pav := range pavilions {
			mark := "🔒"
			if visitor.HasPavilion(pav.ID) {
				mark = "✅"
			}
			fmt.Fprintf(&sb, "%s %s %s — %s\n", mark, pav.Emoji, pav.Name, pav.Location)
		}
		fmt.Fprintf(&sb, "\n💰 Баланс: %d монет", visitor.Coins)

		return editScreen(c, sb.String(), kb.Map(pavilions, visitor))
	}
}

// NewPavilionViewHandler builds the locked-pavilion purchase screen.
func NewPavilionViewHandler(users *user.Service, registry *catalog.Registry, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		pavilionID, err := callbackID(c)
		if err != nil {
			return err
		}

		pav, err := registry.Pavilion(pavilionID)
		if err != nil {
			return apperrors.NewNotFoundError("pavilion", pavilionID)
		}

		ctx := logger.WithCorrelationID(context.Background())
		visitor, err := users.GetOrCreate(ctx, c.Sender().ID)
		if err != nil {
			return err
		}

		text := fmt.Sprintf(
			"%s %s\n📍 %s\n\n%s\n\n💰 Цена: %d монет\n💵 У тебя: %d монет",
			pav.Emoji, pav.Name, pav.Location, pav.Description, pav.Price, visitor.Coins,
		)

		return editScreen(c, text, kb.PavilionView(pav))
	}
}

// NewPavilionBuyHandler processes a pavilion purchase.
func NewPavilionBuyHandler(users *user.Service, registry *catalog.Registry, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	enter := NewPavilionEnterHandler(users, registry, kb, log)

	return func(c telebot.Context) error {
		pavilionID, err := callbackID(c)
		if err != nil {
			return err
		}

		ctx := logger.WithCorrelationID(context.Background())

		pav, err := users.BuyPavilion(ctx, c.Sender().ID, pavilionID)
		switch {
		case err == nil:
			if respondErr := c.Respond(&telebot.CallbackResponse{
				Text: fmt.Sprintf("🎉 Павильон «%s» открыт!", pav.Name),
			}); respondErr != nil {
				log.Warn("purchase ack failed", slog.Any("error", respondErr))
			}
			return enter(c)

		case errors.Is(err, user.ErrAlreadyOpen):
			return enter(c)

		case errors.Is(err, user.ErrNotEnoughCoins):
			return c.Respond(&telebot.CallbackResponse{
				Text:      fmt.Sprintf("❌ Не хватает монет! Нужно %d.", pav.Price),
				ShowAlert: true,
			})

		default:
			return err
		}
	}
}

// NewPavilionEnterHandler builds the opened-pavilion task list screen.
func NewPavilionEnterHandler(users *user.Service, registry *catalog.Registry, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		pavilionID, err := callbackID(c)
		if err != nil {
			return err
		}

		pav, err := registry.Pavilion(pavilionID)
		if err != nil {
			return apperrors.NewNotFoundError("pavilion", pavilionID)
		}

		ctx := logger.WithCorrelationID(context.Background())
		visitor, err := users.GetOrCreate(ctx, c.Sender().ID)
		if err != nil {
			return err
		}
		if !visitor.HasPavilion(pavilionID) {
			return c.Respond(&telebot.CallbackResponse{Text: "🔒 Павильон ещё закрыт", ShowAlert: true})
		}

		tasks := pavilionTasks(registry, pavilionID)

		text := fmt.Sprintf("%s %s\n\n%s\n\nВыбери задание:", pav.Emoji, pav.Name, pav.Atmosphere)

		return editScreen(c, text, kb.PavilionTasks(pav, tasks, visitor))
	}
}

func pavilionTasks(registry *catalog.Registry, pavilionID int64) []*domain.Task {
	specs := registry.PavilionTasks(pavilionID)
	tasks := make([]*domain.Task, 0, len(specs))
	for _, spec := range specs {
		task := spec.Task
		tasks = append(tasks, &task)
	}
	return tasks
}

// callbackID extracts the single numeric payload of a navigation callback.
func callbackID(c telebot.Context) (int64, error) {
	if c.Callback() == nil {
		return 0, apperrors.NewInvalidEventError("navigation without callback")
	}

	_, payload, err := keyboard.DecodeCallback(strings.TrimSpace(c.Callback().Data))
	if err != nil {
		return 0, apperrors.NewInvalidEventError(err.Error())
	}

	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidEventError("bad id " + payload)
	}

	return id, nil
}
