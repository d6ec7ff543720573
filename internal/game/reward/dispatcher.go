// Package reward credits task completion: coins, counters and the fact
// unlock reference handed back to the caller for rendering.
package reward

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/repository"
)

// Result describes what a completed task earned.
type Result struct {
	TaskID     int64
	TaskName   string
	TaskEmoji  string
	PavilionID int64
	Reward     int64
	NewBalance int64
	// FactID is zero when the task unlocks no fact.
	FactID int64
}

// Dispatcher applies the reward side effects of a finished task. Credits
// are additive single-statement updates, so concurrent completions of
// different tasks by the same user each land in full.
type Dispatcher struct {
	store   repository.Store
	catalog *catalog.Registry
	log     *slog.Logger
}

// NewDispatcher wires the dispatcher.
func NewDispatcher(store repository.Store, registry *catalog.Registry, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		store:   store,
		catalog: registry,
		log:     log,
	}
}

// Complete credits the owning pavilion's reward and bumps the progress
// counters. The session itself is owned by the engine and is not
// touched here.
func (d *Dispatcher) Complete(ctx context.Context, userID, taskID int64) (*Result, error) {
	spec, err := d.catalog.Lookup(taskID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("task", taskID)
		}
		return nil, err
	}

	task := spec.Task

	// The payout belongs to the pavilion, not the task: a catalog where
	// they diverge must still pay the pavilion rate.
	pav, err := d.catalog.Pavilion(task.PavilionID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("pavilion", task.PavilionID)
		}
		return nil, err
	}

	if err := d.store.AddCoins(ctx, userID, pav.Reward); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := d.store.IncrementTasksCompleted(ctx, userID); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := d.store.IncrementGuestsServed(ctx, userID); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	user, err := d.store.User(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	d.log.Info("task completed",
		slog.Int64("user_id", userID),
		slog.Int64("task_id", taskID),
		slog.Int64("reward", pav.Reward),
		slog.Int64("balance", user.Coins),
	)

	return &Result{
		TaskID:     task.ID,
		TaskName:   task.Name,
		TaskEmoji:  task.Emoji,
		PavilionID: task.PavilionID,
		Reward:     pav.Reward,
		NewBalance: user.Coins,
		FactID:     task.FactID,
	}, nil
}

// CollectFact stores the unlocked fact in the user's collection and
// returns its text. Collecting the same fact twice is a no-op credit-wise.
func (d *Dispatcher) CollectFact(ctx context.Context, userID, factID int64) (string, error) {
	fact, err := d.catalog.Fact(factID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return "", apperrors.NewNotFoundError("fact", factID)
		}
		return "", err
	}

	if err := d.store.AddFact(ctx, userID, factID); err != nil {
		return "", apperrors.NewDatabaseError(err)
	}

	return fact.Text, nil
}
