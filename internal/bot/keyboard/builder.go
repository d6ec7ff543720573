// Package keyboard builds the inline keyboards of the fair screens.
package keyboard

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/domain"
	"github.com/winterfair/fairbot/internal/game/engine"
)

// Navigation callback identifiers. Task event identifiers live with the
// engine; these cover the screens around the tasks.
const (
	CallbackMenu          = "menu"
	CallbackMap           = engine.PrefixMap
	CallbackStats         = "stats"
	CallbackCollection    = "collection"
	CallbackFactsMenu     = "facts_menu"
	CallbackFactsPavilion = "facts_pav" // facts_pav:<pavilion>
	CallbackPavilionView  = "pav_view"  // pav_view:<pavilion>
	CallbackPavilionBuy   = "pav_buy"   // pav_buy:<pavilion>
)

// Builder creates inline keyboards for the fair screens.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{log: log}
}

// Markup converts an engine view's button grid into a telebot markup.
// Buttons whose data exceed the callback limit are dropped with a log
// record instead of breaking the whole screen.
func (b *Builder) Markup(view engine.View) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	rows := make([][]telebot.InlineButton, 0, len(view.Buttons))
	for _, row := range view.Buttons {
		buttons := make([]telebot.InlineButton, 0, len(row))
		for _, btn := range row {
			if len(btn.Data) > CallbackDataLimitBytes {
				b.log.Warn("dropping oversized callback button", slog.String("data", btn.Data))
				continue
			}
			buttons = append(buttons, telebot.InlineButton{Text: btn.Label, Data: btn.Data})
		}
		if len(buttons) > 0 {
			rows = append(rows, buttons)
		}
	}

	markup.InlineKeyboard = rows
	return markup
}

// MainMenu builds the welcome screen menu.
func (b *Builder) MainMenu() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{{Text: "🗺 Карта ярмарки", Data: CallbackMap}},
		{{Text: "📚 Моя коллекция", Data: CallbackCollection}},
		{{Text: "📊 Статистика", Data: CallbackStats}},
	}
	return markup
}

// Map builds the pavilion map: owned pavilions enter directly, locked
// ones open the purchase screen.
func (b *Builder) Map(pavilions []*domain.Pavilion, visitor *domain.User) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	rows := make([][]telebot.InlineButton, 0, len(pavilions)+1)
	for _, pav := range pavilions {
		label := fmt.Sprintf("%s %s", pav.Emoji, pav.Name)
		data := fmt.Sprintf("%s:%d", CallbackPavilionView, pav.ID)
		if visitor.HasPavilion(pav.ID) {
			data = engine.PavilionEnterData(pav.ID)
		} else {
			label = "🔒 " + label
		}
		rows = append(rows, []telebot.InlineButton{{Text: label, Data: data}})
	}
	rows = append(rows, []telebot.InlineButton{{Text: "🏠 В меню", Data: CallbackMenu}})

	markup.InlineKeyboard = rows
	return markup
}

// PavilionView builds the locked-pavilion screen with the buy action.
func (b *Builder) PavilionView(pav *domain.Pavilion) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{{Text: fmt.Sprintf("💰 Открыть за %d монет", pav.Price), Data: fmt.Sprintf("%s:%d", CallbackPavilionBuy, pav.ID)}},
		{{Text: "🗺 К карте", Data: CallbackMap}},
	}
	return markup
}

// PavilionTasks builds the task list of an opened pavilion; tasks whose
// fact is already collected are marked as done.
func (b *Builder) PavilionTasks(pav *domain.Pavilion, tasks []*domain.Task, visitor *domain.User) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	rows := make([][]telebot.InlineButton, 0, len(tasks)+1)
	for _, task := range tasks {
		label := fmt.Sprintf("%s %s", task.Emoji, task.Name)
		if task.FactID != 0 && visitor.HasFact(task.FactID) {
			label = "✅ " + label
		}
		rows = append(rows, []telebot.InlineButton{{Text: label, Data: engine.StartData(pav.ID, task.ID)}})
	}
	rows = append(rows, []telebot.InlineButton{{Text: "🗺 К карте", Data: CallbackMap}})

	markup.InlineKeyboard = rows
	return markup
}

// FactsMenu builds the per-pavilion fact collection menu.
func (b *Builder) FactsMenu(pavilions []*domain.Pavilion) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	rows := make([][]telebot.InlineButton, 0, len(pavilions)+1)
	for _, pav := range pavilions {
		rows = append(rows, []telebot.InlineButton{{
			Text: fmt.Sprintf("%s %s", pav.Emoji, pav.Name),
			Data: fmt.Sprintf("%s:%d", CallbackFactsPavilion, pav.ID),
		}})
	}
	rows = append(rows, []telebot.InlineButton{{Text: "🏠 В меню", Data: CallbackMenu}})

	markup.InlineKeyboard = rows
	return markup
}

// BackToMap builds the single back-navigation row.
func (b *Builder) BackToMap() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{{Text: "🗺 К карте", Data: CallbackMap}},
	}
	return markup
}

// BackToMenu builds the single menu-navigation row.
func (b *Builder) BackToMenu() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{{Text: "🏠 В меню", Data: CallbackMenu}},
	}
	return markup
}
