package engine

import (
	"context"
	"log/slog"

	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/game/session"
)

// startReaction renders the opening screen and, unless the window opens
// instantly, launches the staged narration for this attempt's epoch.
func (e *Engine) startReaction(ctx context.Context, sess *session.Session, spec *catalog.TaskSpec) error {
	if spec.Reaction.Instant {
		return e.render(ctx, sess.UserID, reactionScreen(spec.Reaction.Prompt, spec, sess.TaskID))
	}

	if err := e.render(ctx, sess.UserID, reactionWaitScreen(spec.Reaction.Intro, sess.TaskID)); err != nil {
		return err
	}

	// Narration outlives the callback that started it; keep context values
	// (correlation id) but not the request deadline.
	go e.narrate(context.WithoutCancel(ctx), sess.UserID, sess.TaskID, sess.Epoch, spec)

	return nil
}

// narrate walks the staged screens and finally opens the hit window.
// Every write re-checks that the attempt is still the live one: a cancel
// or restart between sleeps makes the narration stop silently.
func (e *Engine) narrate(ctx context.Context, userID, taskID, epoch int64, spec *catalog.TaskSpec) {
	for _, stage := range spec.Reaction.Stages {
		if !e.sleep(ctx, stage.Delay) {
			return
		}
		if !e.narrateScreen(ctx, userID, taskID, epoch, reactionWaitScreen(stage.Text, taskID), false) {
			return
		}
	}

	if !e.sleep(ctx, spec.Reaction.PromptDelay) {
		return
	}

	e.narrateScreen(ctx, userID, taskID, epoch, reactionScreen(spec.Reaction.Prompt, spec, taskID), true)
}

// narrateScreen validates the attempt under the key lock and renders one
// staged screen. With open set, it also flips the ready flag before
// rendering, making the subsequent hit a success.
func (e *Engine) narrateScreen(ctx context.Context, userID, taskID, epoch int64, view View, open bool) bool {
	unlock := e.locks.lock(userID, taskID)
	defer unlock()

	sess, err := e.sessions.Get(ctx, userID, taskID)
	if err != nil {
		return false
	}
	if sess.Epoch != epoch || sess.Reaction == nil || sess.Reaction.Ready {
		return false
	}

	if open {
		sess.Reaction.Ready = true
		if err := e.sessions.Put(ctx, sess); err != nil {
			e.log.Error("failed to open hit window",
				slog.Int64("user_id", userID), slog.Int64("task_id", taskID), "error", err)
			return false
		}
	}

	if err := e.sink.Render(ctx, userID, view); err != nil {
		e.log.Warn("narration render rejected",
			slog.Int64("user_id", userID), slog.Int64("task_id", taskID), "error", err)
	}

	return true
}

// handleWait answers the pre-window wait button with a toast. State
// never moves: the button exists so the screen is not dead to taps.
func (e *Engine) handleWait(ctx context.Context, ev *Event) error {
	if _, err := e.lookupSpec(ev.TaskID); err != nil {
		return err
	}

	return e.alert(ctx, ev.UserID, "⏳ Терпение! Жди сигнала.")
}

// handleHit resolves a reaction press: success inside the open window,
// failure before it. A failed attempt keeps its session so the retry
// button works, but bumps the epoch to kill the running narration.
func (e *Engine) handleHit(ctx context.Context, ev *Event) error {
	spec, err := e.lookupSpec(ev.TaskID)
	if err != nil {
		return err
	}

	unlock := e.locks.lock(ev.UserID, ev.TaskID)
	defer unlock()

	sess, err := e.liveSession(ctx, ev.UserID, ev.TaskID)
	if err != nil {
		return err
	}
	if sess.Archetype != domain.ArchetypeReaction || sess.Reaction == nil {
		return apperrors.NewInvalidEventError("hit on non-reaction session")
	}

	if sess.Reaction.Ready {
		return e.complete(ctx, sess, "")
	}

	sess.Epoch++
	if err := e.sessions.Put(ctx, sess); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	e.recordFailed(string(domain.ArchetypeReaction))
	e.log.Info("early reaction hit",
		slog.Int64("user_id", ev.UserID), slog.Int64("task_id", ev.TaskID))

	return e.render(ctx, ev.UserID, reactionFailView(spec))
}

func reactionWaitScreen(text string, taskID int64) View {
	return View{
		Text: text,
		Buttons: [][]Button{
			{{Label: "⏳ Подождать…", Data: WaitData(taskID)}},
			cancelRow(taskID),
		},
	}
}

func reactionScreen(text string, spec *catalog.TaskSpec, taskID int64) View {
	return View{
		Text: text,
		Buttons: [][]Button{
			{{Label: spec.Reaction.HitLabel, Data: HitData(taskID)}},
			cancelRow(taskID),
		},
	}
}

func reactionFailView(spec *catalog.TaskSpec) View {
	return View{
		Text: "💥 Слишком рано!\n\n" + spec.Task.Emoji + " " + spec.Task.Name + " — момент упущен.\n\nПопробуй ещё раз и дождись сигнала!",
		Buttons: [][]Button{
			{{Label: "🔄 Попробовать снова", Data: StartData(spec.Task.PavilionID, spec.Task.ID)}},
			cancelRow(spec.Task.ID),
		},
	}
}
