package engine

import (
	"context"
	"strings"

	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/game/session"
)

// handleChoice resolves a pick: predicate check, multi-pick
// accumulation, successor handoff or completion.
func (e *Engine) handleChoice(ctx context.Context, ev *Event) error {
	spec, err := e.lookupSpec(ev.TaskID)
	if err != nil {
		return err
	}
	choice := spec.Choice
	if choice == nil {
		return apperrors.NewInvalidEventError("choice event for non-choice task")
	}

	unlock := e.locks.lock(ev.UserID, ev.TaskID)
	defer unlock()

	sess, err := e.liveSession(ctx, ev.UserID, ev.TaskID)
	if err != nil {
		return err
	}
	if sess.Archetype != domain.ArchetypeChoice || sess.Choice == nil {
		return apperrors.NewInvalidEventError("choice event for non-choice session")
	}

	if ev.Value == DoneValue {
		if !choice.MultiPick() {
			return apperrors.NewInvalidEventError("done on single-pick task")
		}
		// A stale screen can still carry the done button; re-prompt
		// instead of trusting the press.
		if len(sess.Choice.Picks) < choice.RequiredPicks {
			view := choicePromptView(spec, sess)
			view.Text = "Ещё не всё! Продолжай выбирать.\n\n" + view.Text
			return e.render(ctx, ev.UserID, view)
		}
		return e.complete(ctx, sess, "✅ Выбор сделан!")
	}

	if !hasOption(choice.Options, ev.Value) {
		return apperrors.NewInvalidEventError("unknown choice value " + ev.Value)
	}

	// Wrong pick against a predicate re-prompts without touching state.
	if choice.Correct != "" && ev.Value != choice.Correct {
		return e.render(ctx, ev.UserID, wrongChoiceView(choice, sess.TaskID))
	}

	if choice.MultiPick() {
		for _, picked := range sess.Choice.Picks {
			if picked == ev.Value {
				return e.alert(ctx, ev.UserID, "Уже выбрано!")
			}
		}
		if len(sess.Choice.Picks) >= choice.RequiredPicks {
			return e.alert(ctx, ev.UserID, "Достаточно! Нажми «Готово».")
		}

		sess.Choice.Picks = append(sess.Choice.Picks, ev.Value)
		if err := e.sessions.Put(ctx, sess); err != nil {
			return apperrors.NewDatabaseError(err)
		}

		return e.render(ctx, ev.UserID, choicePromptView(spec, sess))
	}

	if choice.Next != nil {
		return e.enterSuccessor(ctx, sess, spec)
	}

	return e.complete(ctx, sess, "")
}

// enterSuccessor switches the session from the choice shape into the
// declared successor sequence, same attempt, same epoch.
func (e *Engine) enterSuccessor(ctx context.Context, sess *session.Session, spec *catalog.TaskSpec) error {
	sess.Archetype = domain.ArchetypeSequence
	sess.Choice = nil
	sess.Sequence = &session.SequenceState{}
	if spec.Choice.Next.Mode == catalog.SequenceCategorized {
		sess.Sequence.Counts = make(map[string]int)
	}

	if err := e.sessions.Put(ctx, sess); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	return e.render(ctx, sess.UserID, sequenceOpeningView(spec, sess))
}

func (e *Engine) alert(ctx context.Context, userID int64, text string) error {
	if err := e.sink.Alert(ctx, userID, text); err != nil {
		return apperrors.NewTransientRenderError(err)
	}
	return nil
}

func hasOption(options []catalog.Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func choicePromptView(spec *catalog.TaskSpec, sess *session.Session) View {
	choice := spec.Choice
	text := choice.Prompt

	if choice.MultiPick() {
		var picked []string
		for _, value := range sess.Choice.Picks {
			for _, opt := range choice.Options {
				if opt.Value == value {
					picked = append(picked, opt.Label)
				}
			}
		}
		if len(picked) > 0 {
			text += "\n\nВыбрано: " + strings.Join(picked, ", ")
		}
	}

	var rows [][]Button
	for _, opt := range choice.Options {
		if choice.MultiPick() && contains(sess.Choice.Picks, opt.Value) {
			continue
		}
		rows = append(rows, []Button{{Label: opt.Label, Data: ChoiceData(sess.TaskID, opt.Value)}})
	}
	if choice.MultiPick() && len(sess.Choice.Picks) >= choice.RequiredPicks {
		rows = append(rows, []Button{{Label: "✅ Готово", Data: ChoiceData(sess.TaskID, DoneValue)}})
	}
	rows = append(rows, cancelRow(sess.TaskID))

	return View{Text: text, Buttons: rows}
}

func wrongChoiceView(choice *catalog.ChoiceSpec, taskID int64) View {
	var rows [][]Button
	for _, opt := range choice.Options {
		rows = append(rows, []Button{{Label: opt.Label, Data: ChoiceData(taskID, opt.Value)}})
	}
	rows = append(rows, cancelRow(taskID))

	return View{Text: choice.WrongText, Buttons: rows}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
