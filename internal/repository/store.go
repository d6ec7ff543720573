// Package repository implements the persistence contract consumed by the
// game core: user progress, balances and the static catalog tables.
package repository

import (
	"context"
	"errors"

	"github.com/winterfair/fairbot/internal/domain"
)

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientFunds indicates that a conditional debit was rejected.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Store defines persistence operations for users and the catalog.
//
// Every mutation must be safe under concurrent calls for the same user:
// increments are single atomic UPDATE statements, set mutations run inside
// an immediate transaction.
type Store interface {
	// GetOrCreateUser returns the user profile, creating it with the
	// provided starting balance on first contact.
	GetOrCreateUser(ctx context.Context, userID, startingCoins int64) (*domain.User, error)
	// User returns the stored profile or ErrNotFound.
	User(ctx context.Context, userID int64) (*domain.User, error)

	// AddCoins credits the user's balance additively.
	AddCoins(ctx context.Context, userID, amount int64) error
	// SpendCoins debits the balance only when it covers the amount,
	// returning ErrInsufficientFunds otherwise.
	SpendCoins(ctx context.Context, userID, amount int64) error

	// OpenPavilion records the pavilion as opened; opening an already
	// opened pavilion is a no-op.
	OpenPavilion(ctx context.Context, userID, pavilionID int64) error
	// AddFact records the fact in the user's collection; adding an
	// already collected fact is a no-op.
	AddFact(ctx context.Context, userID, factID int64) error

	IncrementTasksCompleted(ctx context.Context, userID int64) error
	IncrementGuestsServed(ctx context.Context, userID int64) error

	Pavilion(ctx context.Context, pavilionID int64) (*domain.Pavilion, error)
	Pavilions(ctx context.Context) ([]*domain.Pavilion, error)
	Task(ctx context.Context, taskID int64) (*domain.Task, error)
	PavilionTasks(ctx context.Context, pavilionID int64) ([]*domain.Task, error)
	Fact(ctx context.Context, factID int64) (*domain.Fact, error)
	PavilionFacts(ctx context.Context, pavilionID int64) ([]*domain.Fact, error)

	UserStats(ctx context.Context, userID int64) (*domain.Stats, error)
}
