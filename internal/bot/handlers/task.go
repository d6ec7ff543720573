package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/bot/keyboard"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/game/engine"
	"github.com/winterfair/fairbot/internal/game/reward"
	"github.com/winterfair/fairbot/pkg/logger"
)

// NewTaskEventHandler feeds task callbacks into the game engine. The
// callback message is tracked first so narration edits land on the same
// screen the user is looking at.
func NewTaskEventHandler(eng *engine.Engine, sink *TelegramSink, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		cb := c.Callback()
		if cb == nil || c.Sender() == nil {
			return nil
		}

		ev, err := engine.ParseEvent(c.Sender().ID, strings.TrimSpace(cb.Data))
		if err != nil {
			return err
		}

		sink.Track(ev.UserID, cb.Message)

		ctx := logger.WithCorrelationID(context.Background())
		if err := eng.HandleEvent(ctx, ev); err != nil {
			return err
		}

		return c.Respond(&telebot.CallbackResponse{})
	}
}

// NewFactHandler reveals the fact unlocked by a completed task and files
// it into the user's collection.
func NewFactHandler(rewards *reward.Dispatcher, registry *catalog.Registry, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c.Callback() == nil || c.Sender() == nil {
			return nil
		}

		pavilionID, taskID, err := factPayload(c.Callback().Data)
		if err != nil {
			return err
		}

		spec, err := registry.Lookup(taskID)
		if err != nil {
			return apperrors.NewNotFoundError("task", taskID)
		}
		if spec.Task.FactID == 0 {
			return apperrors.NewNotFoundError("fact", 0)
		}

		ctx := logger.WithCorrelationID(context.Background())

		text, err := rewards.CollectFact(ctx, c.Sender().ID, spec.Task.FactID)
		if err != nil {
			return err
		}

		log.Info("fact collected",
			slog.Int64("user_id", c.Sender().ID),
			slog.Int64("fact_id", spec.Task.FactID),
		)

		screen := fmt.Sprintf("💡 Зимний факт\n\n%s", text)

		markup := &telebot.ReplyMarkup{}
		markup.InlineKeyboard = [][]telebot.InlineButton{
			{{Text: "⬅️ В павильон", Data: engine.PavilionEnterData(pavilionID)}},
			{{Text: "🗺 К карте", Data: keyboard.CallbackMap}},
		}

		return editScreen(c, screen, markup)
	}
}

// factPayload parses fact:<pavilion>:<task> callback data.
func factPayload(data string) (pavilionID, taskID int64, err error) {
	_, payload, err := keyboard.DecodeCallback(strings.TrimSpace(data))
	if err != nil {
		return 0, 0, apperrors.NewInvalidEventError(err.Error())
	}

	parts := strings.Split(payload, keyboard.CallbackDataSeparator)
	if len(parts) != 2 {
		return 0, 0, apperrors.NewInvalidEventError("fact payload wants 2 fields, got " + strconv.Itoa(len(parts)))
	}

	pavilionID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil || pavilionID <= 0 {
		return 0, 0, apperrors.NewInvalidEventError("bad pavilion id " + parts[0])
	}

	taskID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || taskID <= 0 {
		return 0, 0, apperrors.NewInvalidEventError("bad task id " + parts[1])
	}

	return pavilionID, taskID, nil
}
