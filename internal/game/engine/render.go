package engine

import (
	"context"
	"fmt"

	"github.com/winterfair/fairbot/internal/game/reward"
)

// Button is one inline keyboard button: label plus callback data.
type Button struct {
	Label string
	Data  string
}

// View is a renderable task screen.
type View struct {
	Text    string
	Buttons [][]Button
}

// Sink is where the engine pushes screens. The bot adapter edits the
// user's game message in place; tests record the views.
//
// Render failures are treated as transient: the state mutation that
// produced the view is already committed and is never rolled back.
type Sink interface {
	Render(ctx context.Context, userID int64, view View) error
	// Alert shows a short popup without replacing the game message.
	Alert(ctx context.Context, userID int64, text string) error
}

func cancelRow(taskID int64) []Button {
	return []Button{{Label: "❌ Отменить", Data: CancelData(taskID)}}
}

func successView(res *reward.Result, headline string) View {
	text := ""
	if headline != "" {
		text = headline + "\n\n"
	}
	text += fmt.Sprintf("🎉 Задание выполнено!\n\n%s %s\n\n💰 +%d монет\n💵 Баланс: %d монет",
		res.TaskEmoji, res.TaskName, res.Reward, res.NewBalance)

	var rows [][]Button
	if res.FactID != 0 {
		rows = append(rows, []Button{{Label: "📖 Узнать факт", Data: FactData(res.PavilionID, res.TaskID)}})
	}
	rows = append(rows,
		[]Button{{Label: "🎪 В павильон", Data: PavilionEnterData(res.PavilionID)}},
		[]Button{{Label: "🗺 Карта ярмарки", Data: PrefixMap}},
	)

	return View{Text: text, Buttons: rows}
}

func cancelledView(pavilionID int64) View {
	view := View{Text: "❌ Задание отменено.\n\nВозвращайся, когда будешь готов!"}

	if pavilionID != 0 {
		view.Buttons = append(view.Buttons, []Button{{Label: "🎪 В павильон", Data: PavilionEnterData(pavilionID)}})
	}
	view.Buttons = append(view.Buttons, []Button{{Label: "🗺 Карта ярмарки", Data: PrefixMap}})

	return view
}
