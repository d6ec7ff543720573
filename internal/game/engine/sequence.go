package engine

import (
	"context"
	"fmt"

	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/game/session"
)

// resolveSequence returns the sequence topology driving the session:
// the task's own, or the successor a choice task handed off into.
func resolveSequence(spec *catalog.TaskSpec) *catalog.SequenceSpec {
	if spec.Sequence != nil {
		return spec.Sequence
	}
	if spec.Choice != nil {
		return spec.Choice.Next
	}
	return nil
}

// handleSequence advances a sequence session one event: fixed step,
// repeat increment or categorized increment.
func (e *Engine) handleSequence(ctx context.Context, ev *Event) error {
	spec, err := e.lookupSpec(ev.TaskID)
	if err != nil {
		return err
	}
	seq := resolveSequence(spec)
	if seq == nil {
		return apperrors.NewInvalidEventError("sequence event for non-sequence task")
	}

	unlock := e.locks.lock(ev.UserID, ev.TaskID)
	defer unlock()

	sess, err := e.liveSession(ctx, ev.UserID, ev.TaskID)
	if err != nil {
		return err
	}
	if sess.Archetype != domain.ArchetypeSequence || sess.Sequence == nil {
		return apperrors.NewInvalidEventError("sequence event for non-sequence session")
	}

	switch seq.Mode {
	case catalog.SequenceFixed:
		return e.advanceFixed(ctx, sess, seq, ev)
	case catalog.SequenceRepeat:
		return e.advanceRepeat(ctx, sess, seq.Repeat, ev)
	case catalog.SequenceCategorized:
		return e.advanceCategorized(ctx, sess, seq.Categories, ev)
	}

	return apperrors.NewInvalidEventError("unknown sequence mode " + string(seq.Mode))
}

func (e *Engine) advanceFixed(ctx context.Context, sess *session.Session, seq *catalog.SequenceSpec, ev *Event) error {
	// A press from a superseded screen carries an older step index; just
	// show the current step again.
	if ev.Step != sess.Sequence.Step {
		return e.render(ctx, ev.UserID, fixedStepView(seq, sess.TaskID, sess.Sequence.Step))
	}

	if !hasOption(seq.Steps[sess.Sequence.Step].Options, ev.Value) {
		return apperrors.NewInvalidEventError("unknown step value " + ev.Value)
	}

	if sess.Sequence.Step+1 >= seq.MaxStep() {
		return e.complete(ctx, sess, "")
	}

	sess.Sequence.Step++
	if err := e.sessions.Put(ctx, sess); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	return e.render(ctx, ev.UserID, fixedStepView(seq, sess.TaskID, sess.Sequence.Step))
}

func (e *Engine) advanceRepeat(ctx context.Context, sess *session.Session, repeat *catalog.RepeatSpec, ev *Event) error {
	switch ev.Value {
	case DoneValue:
		// Same stale-screen defense as multi-pick choice: a premature
		// done re-renders the counter instead of completing.
		if sess.Sequence.Counter < repeat.Required {
			view := repeatView(repeat, sess.TaskID, sess.Sequence.Counter)
			view.Text = "Ещё рано! Продолжай.\n\n" + view.Text
			return e.render(ctx, ev.UserID, view)
		}
		return e.complete(ctx, sess, repeat.DoneText)

	case repeat.Action:
		if sess.Sequence.Counter >= repeat.Required {
			return e.alert(ctx, ev.UserID, "Достаточно! Нажми «Готово».")
		}

		sess.Sequence.Counter++
		if err := e.sessions.Put(ctx, sess); err != nil {
			return apperrors.NewDatabaseError(err)
		}

		return e.render(ctx, ev.UserID, repeatView(repeat, sess.TaskID, sess.Sequence.Counter))
	}

	return apperrors.NewInvalidEventError("unknown repeat action " + ev.Value)
}

func (e *Engine) advanceCategorized(ctx context.Context, sess *session.Session, spec *catalog.CategorizedSpec, ev *Event) error {
	if ev.Value == DoneValue {
		// Same stale-screen defense as the other accumulators: done is
		// re-checked against the buckets before completing.
		if !spec.Satisfied(sess.Sequence.Counts) {
			view := categorizedView(spec, sess.TaskID, sess.Sequence.Counts)
			view.Text = "Ещё не всё собрано! Продолжай.\n\n" + view.Text
			return e.render(ctx, ev.UserID, view)
		}
		return e.complete(ctx, sess, spec.DoneText)
	}

	category, ok := spec.Lookup(ev.Value)
	if !ok {
		return apperrors.NewInvalidEventError("unknown category " + ev.Value)
	}

	if sess.Sequence.Counts == nil {
		sess.Sequence.Counts = make(map[string]int)
	}
	if sess.Sequence.Counts[category.Value] >= category.Cap {
		return e.alert(ctx, ev.UserID, fmt.Sprintf("%s — уже достаточно!", category.Label))
	}

	sess.Sequence.Counts[category.Value]++

	if err := e.sessions.Put(ctx, sess); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	return e.render(ctx, ev.UserID, categorizedView(spec, sess.TaskID, sess.Sequence.Counts))
}

func sequenceOpeningView(spec *catalog.TaskSpec, sess *session.Session) View {
	seq := resolveSequence(spec)

	switch seq.Mode {
	case catalog.SequenceRepeat:
		return repeatView(seq.Repeat, sess.TaskID, 0)
	case catalog.SequenceCategorized:
		return categorizedView(seq.Categories, sess.TaskID, nil)
	default:
		return fixedStepView(seq, sess.TaskID, 0)
	}
}

func fixedStepView(seq *catalog.SequenceSpec, taskID int64, step int) View {
	var rows [][]Button
	for _, opt := range seq.Steps[step].Options {
		rows = append(rows, []Button{{Label: opt.Label, Data: SequenceData(taskID, step, opt.Value)}})
	}
	rows = append(rows, cancelRow(taskID))

	return View{Text: seq.Steps[step].Prompt, Buttons: rows}
}

func repeatView(repeat *catalog.RepeatSpec, taskID int64, counter int) View {
	var rows [][]Button
	if counter < repeat.Required {
		rows = append(rows, []Button{{Label: repeat.ActionLabel, Data: SequenceData(taskID, 0, repeat.Action)}})
	} else {
		rows = append(rows, []Button{{Label: "✅ Готово", Data: SequenceData(taskID, 0, DoneValue)}})
	}
	rows = append(rows, cancelRow(taskID))

	return View{Text: fmt.Sprintf(repeat.Prompt, counter, repeat.Required), Buttons: rows}
}

func categorizedView(spec *catalog.CategorizedSpec, taskID int64, counts map[string]int) View {
	text := spec.Prompt + "\n"
	for _, category := range spec.Categories {
		text += fmt.Sprintf("\n%s: %d/%d", category.Label, counts[category.Value], category.Cap)
	}

	var rows [][]Button
	for _, category := range spec.Categories {
		rows = append(rows, []Button{{Label: category.Label, Data: SequenceData(taskID, 0, category.Value)}})
	}
	if spec.Satisfied(counts) {
		rows = append(rows, []Button{{Label: "✅ Готово", Data: SequenceData(taskID, 0, DoneValue)}})
	}
	rows = append(rows, cancelRow(taskID))

	return View{Text: text, Buttons: rows}
}
