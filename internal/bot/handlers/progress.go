package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/bot/keyboard"
	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/user"
	"github.com/winterfair/fairbot/pkg/logger"
)

// NewStatsHandler builds the progress statistics screen.
func NewStatsHandler(users *user.Service, registry *catalog.Registry, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c.Sender() == nil {
			return nil
		}

		ctx := logger.WithCorrelationID(context.Background())

		stats, err := users.Stats(ctx, c.Sender().ID)
		if err != nil {
			return err
		}

		totalPavilions := len(registry.Pavilions())
		totalFacts := 0
		for _, spec := range registry.Tasks() {
			if spec.Task.FactID != 0 {
				totalFacts++
			}
		}

		text := fmt.Sprintf(
			"📊 Твоя статистика\n\n"+
				"💰 Монеты: %d\n"+
				"🏠 Павильоны: %d из %d\n"+
				"✅ Заданий выполнено: %d\n"+
				"💡 Фактов собрано: %d из %d\n"+
				"🤝 Гостей обслужено: %d",
			stats.Coins,
			stats.PavilionsOpen, totalPavilions,
			stats.TasksCompleted,
			stats.FactsCollected, totalFacts,
			stats.GuestsServed,
		)

		return editScreen(c, text, kb.BackToMenu())
	}
}

// NewCollectionHandler builds the fact collection overview: per-pavilion
// collected counts with drill-down buttons.
func NewCollectionHandler(users *user.Service, registry *catalog.Registry, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
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
		sb.WriteString("📚 Коллекция зимних фактов\n\n")
		for _, pav := range pavilions {
			collected, total := factProgress(registry, visitor, pav.ID)
			fmt.Fprintf(&sb, "%s %s — %d/%d\n", pav.Emoji, pav.Name, collected, total)
		}
		sb.WriteString("\nВыбери павильон, чтобы перечитать факты:")

		return editScreen(c, sb.String(), kb.FactsMenu(pavilions))
	}
}

// NewFactsPavilionHandler lists the facts of one pavilion: collected
// facts in full, the rest hidden behind a placeholder.
func NewFactsPavilionHandler(users *user.Service, registry *catalog.Registry, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
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

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s %s — факты\n\n", pav.Emoji, pav.Name)
		for _, spec := range registry.PavilionTasks(pavilionID) {
			if spec.Task.FactID == 0 {
				continue
			}
			if visitor.HasFact(spec.Task.FactID) {
				fact, factErr := registry.Fact(spec.Task.FactID)
				if factErr != nil {
					continue
				}
				fmt.Fprintf(&sb, "💡 %s\n\n", fact.Text)
				continue
			}
			fmt.Fprintf(&sb, "❓ %s — выполни задание, чтобы узнать\n\n", spec.Task.Name)
		}

		markup := &telebot.ReplyMarkup{}
		markup.InlineKeyboard = [][]telebot.InlineButton{
			{{Text: "📚 К коллекции", Data: keyboard.CallbackCollection}},
			{{Text: "🏠 В меню", Data: keyboard.CallbackMenu}},
		}

		return editScreen(c, strings.TrimRight(sb.String(), "\n"), markup)
	}
}

func factProgress(registry *catalog.Registry, visitor *domain.User, pavilionID int64) (collected, total int) {
	for _, spec := range registry.PavilionTasks(pavilionID) {
		if spec.Task.FactID == 0 {
			continue
		}
		total++
		if visitor.HasFact(spec.Task.FactID) {
			collected++
		}
	}
	return collected, total
}
