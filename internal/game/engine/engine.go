// Package engine runs the task state machines. One engine instance
// serves every user; per-key locks serialize events for the same
// (user, task) attempt while independent attempts proceed in parallel.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/game/reward"
	"github.com/winterfair/fairbot/internal/game/session"
)

// Rewarder applies completion side effects.
type Rewarder interface {
	Complete(ctx context.Context, userID, taskID int64) (*reward.Result, error)
}

// Metrics receives engine outcome events. A nil recorder disables
// instrumentation.
type Metrics interface {
	TaskStarted(archetype string)
	TaskCompleted(archetype string)
	TaskFailed(archetype string)
	TaskCancelled(archetype string)
}

// Engine is the task event processor.
type Engine struct {
	sessions session.Store
	catalog  *catalog.Registry
	rewards  Rewarder
	sink     Sink
	locks    *keyedMutex
	metrics  Metrics
	log      *slog.Logger

	// sleep reports false when the wait was interrupted. Tests replace it
	// to drive narration synchronously.
	sleep func(ctx context.Context, d time.Duration) bool
}

// New wires an engine.
func New(sessions session.Store, registry *catalog.Registry, rewards Rewarder, sink Sink, metrics Metrics, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}

	return &Engine{
		sessions: sessions,
		catalog:  registry,
		rewards:  rewards,
		sink:     sink,
		locks:    newKeyedMutex(),
		metrics:  metrics,
		log:      log,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// HandleEvent processes one parsed task event to completion: state
// mutation first, render second.
func (e *Engine) HandleEvent(ctx context.Context, ev *Event) error {
	switch ev.Kind {
	case KindStart:
		return e.handleStart(ctx, ev)
	case KindHit:
		return e.handleHit(ctx, ev)
	case KindWait:
		return e.handleWait(ctx, ev)
	case KindChoice:
		return e.handleChoice(ctx, ev)
	case KindSequence:
		return e.handleSequence(ctx, ev)
	case KindCancel:
		return e.handleCancel(ctx, ev)
	}

	return apperrors.NewInvalidEventError("unknown event kind " + string(ev.Kind))
}

// handleStart creates a fresh session for the task, overwriting any
// previous attempt. The epoch bump invalidates narration of the
// replaced attempt.
func (e *Engine) handleStart(ctx context.Context, ev *Event) error {
	spec, err := e.lookupSpec(ev.TaskID)
	if err != nil {
		return err
	}

	unlock := e.locks.lock(ev.UserID, ev.TaskID)
	defer unlock()

	epoch := int64(1)
	if previous, err := e.sessions.Get(ctx, ev.UserID, ev.TaskID); err == nil {
		epoch = previous.Epoch + 1
	} else if !errors.Is(err, session.ErrSessionNotFound) {
		return apperrors.NewDatabaseError(err)
	}

	sess := &session.Session{
		UserID:     ev.UserID,
		TaskID:     ev.TaskID,
		PavilionID: spec.Task.PavilionID,
		Archetype:  spec.Archetype(),
		Epoch:      epoch,
		StartedAt:  time.Now(),
	}

	switch spec.Archetype() {
	case domain.ArchetypeReaction:
		sess.Reaction = &session.ReactionState{Ready: spec.Reaction.Instant}
	case domain.ArchetypeChoice:
		sess.Choice = &session.ChoiceState{}
	case domain.ArchetypeSequence:
		sess.Sequence = &session.SequenceState{}
		if spec.Sequence.Mode == catalog.SequenceCategorized {
			sess.Sequence.Counts = make(map[string]int)
		}
	}

	if err := e.sessions.Put(ctx, sess); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	e.recordStarted(string(spec.Archetype()))
	e.log.Info("task started",
		slog.Int64("user_id", ev.UserID),
		slog.Int64("task_id", ev.TaskID),
		slog.String("archetype", string(spec.Archetype())),
		slog.Int64("epoch", epoch),
	)

	switch spec.Archetype() {
	case domain.ArchetypeReaction:
		return e.startReaction(ctx, sess, spec)
	case domain.ArchetypeChoice:
		return e.render(ctx, ev.UserID, choicePromptView(spec, sess))
	default:
		return e.render(ctx, ev.UserID, sequenceOpeningView(spec, sess))
	}
}

// handleCancel deletes the session and confirms. Cancelling an absent
// session still renders the confirmation: the outcome the user asked
// for already holds.
func (e *Engine) handleCancel(ctx context.Context, ev *Event) error {
	unlock := e.locks.lock(ev.UserID, ev.TaskID)
	defer unlock()

	var pavilionID int64
	sess, err := e.sessions.Get(ctx, ev.UserID, ev.TaskID)
	switch {
	case err == nil:
		pavilionID = sess.PavilionID
		if err := e.sessions.Delete(ctx, ev.UserID, ev.TaskID); err != nil {
			return apperrors.NewDatabaseError(err)
		}
		e.recordCancelled(string(sess.Archetype))
		e.log.Info("task cancelled", slog.Int64("user_id", ev.UserID), slog.Int64("task_id", ev.TaskID))
	case errors.Is(err, session.ErrSessionNotFound):
		if spec, specErr := e.catalog.Lookup(ev.TaskID); specErr == nil {
			pavilionID = spec.Task.PavilionID
		}
	default:
		return apperrors.NewDatabaseError(err)
	}

	return e.render(ctx, ev.UserID, cancelledView(pavilionID))
}

// complete finishes the attempt: the session goes first so a concurrent
// duplicate event cannot double-credit, then the reward lands, then the
// success screen.
func (e *Engine) complete(ctx context.Context, sess *session.Session, headline string) error {
	if err := e.sessions.Delete(ctx, sess.UserID, sess.TaskID); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	res, err := e.rewards.Complete(ctx, sess.UserID, sess.TaskID)
	if err != nil {
		return err
	}

	e.recordCompleted(string(sess.Archetype))

	return e.render(ctx, sess.UserID, successView(res, headline))
}

func (e *Engine) lookupSpec(taskID int64) (*catalog.TaskSpec, error) {
	spec, err := e.catalog.Lookup(taskID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("task", taskID)
		}
		return nil, err
	}

	return spec, nil
}

// liveSession loads the session for an in-flight event, translating
// absence into the no-active-session error the user sees as "start over".
func (e *Engine) liveSession(ctx context.Context, userID, taskID int64) (*session.Session, error) {
	sess, err := e.sessions.Get(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, apperrors.NewNoActiveSessionError(taskID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	return sess, nil
}

// render pushes a view and wraps a rejected write as transient: state is
// already committed, the user recovers by pressing any button again.
func (e *Engine) render(ctx context.Context, userID int64, view View) error {
	if err := e.sink.Render(ctx, userID, view); err != nil {
		return apperrors.NewTransientRenderError(err)
	}

	return nil
}

func (e *Engine) recordStarted(archetype string) {
	if e.metrics != nil {
		e.metrics.TaskStarted(archetype)
	}
}

func (e *Engine) recordCompleted(archetype string) {
	if e.metrics != nil {
		e.metrics.TaskCompleted(archetype)
	}
}

func (e *Engine) recordFailed(archetype string) {
	if e.metrics != nil {
		e.metrics.TaskFailed(archetype)
	}
}

func (e *Engine) recordCancelled(archetype string) {
	if e.metrics != nil {
		e.metrics.TaskCancelled(archetype)
	}
}
