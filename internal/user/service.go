// Package user provides business operations over fair visitor profiles.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/repository"
)

// ErrAlreadyOpen indicates a purchase of a pavilion the user already owns.
var ErrAlreadyOpen = errors.New("pavilion already open")

// ErrNotEnoughCoins indicates a purchase the balance does not cover.
var ErrNotEnoughCoins = errors.New("not enough coins")

// Service provides business operations over users: onboarding, pavilion
// purchases and progress snapshots.
type Service struct {
	store         repository.Store
	catalog       *catalog.Registry
	startingCoins int64
	log           *slog.Logger
}

// NewService constructs a new Service instance.
func NewService(store repository.Store, registry *catalog.Registry, startingCoins int64, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:         store,
		catalog:       registry,
		startingCoins: startingCoins,
		log:           log,
	}
}

// GetOrCreate fetches the profile by telegram ID, creating it with the
// starting balance and the free entry pavilion on first contact.
func (s *Service) GetOrCreate(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.GetOrCreateUser(ctx, userID, s.startingCoins)
	if err != nil {
		s.logError("get_or_create", userID, err)
		return nil, apperrors.NewDatabaseError(err)
	}

	if len(user.PavilionsOpen) == 0 {
		if err := s.openFreePavilions(ctx, user); err != nil {
			s.logError("get_or_create.open_free", userID, err)
			return nil, apperrors.NewDatabaseError(err)
		}
	}

	return user, nil
}

// openFreePavilions grants every zero-price pavilion to a fresh profile.
func (s *Service) openFreePavilions(ctx context.Context, user *domain.User) error {
	for _, spec := range s.catalog.Tasks() {
		pav, err := s.catalog.Pavilion(spec.Task.PavilionID)
		if err != nil || pav.Price != 0 || user.HasPavilion(pav.ID) {
			continue
		}

		if err := s.store.OpenPavilion(ctx, user.ID, pav.ID); err != nil {
			return fmt.Errorf("open pavilion %d: %w", pav.ID, err)
		}
		user.PavilionsOpen = append(user.PavilionsOpen, pav.ID)
	}

	return nil
}

// BuyPavilion debits the pavilion price and opens it. The debit is
// conditional, so two concurrent purchases cannot overdraw the balance.
func (s *Service) BuyPavilion(ctx context.Context, userID, pavilionID int64) (*domain.Pavilion, error) {
	pav, err := s.catalog.Pavilion(pavilionID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("pavilion", pavilionID)
	}

	user, err := s.store.User(ctx, userID)
	if err != nil {
		s.logError("buy_pavilion.user", userID, err)
		return nil, apperrors.NewDatabaseError(err)
	}
	if user.HasPavilion(pavilionID) {
		return pav, ErrAlreadyOpen
	}

	if err := s.store.SpendCoins(ctx, userID, pav.Price); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return pav, ErrNotEnoughCoins
		}
		s.logError("buy_pavilion.spend", userID, err)
		return nil, apperrors.NewDatabaseError(err)
	}

	if err := s.store.OpenPavilion(ctx, userID, pavilionID); err != nil {
		s.logError("buy_pavilion.open", userID, err)
		return nil, apperrors.NewDatabaseError(err)
	}

	s.log.Info("pavilion opened",
		slog.Int64("user_id", userID),
		slog.Int64("pavilion_id", pavilionID),
		slog.Int64("price", pav.Price),
	)

	return pav, nil
}

// Stats returns the aggregate progress snapshot.
func (s *Service) Stats(ctx context.Context, userID int64) (*domain.Stats, error) {
	stats, err := s.store.UserStats(ctx, userID)
	if err != nil {
		s.logError("stats", userID, err)
		return nil, apperrors.NewDatabaseError(err)
	}

	return stats, nil
}

func (s *Service) logError(operation string, userID int64, err error) {
	if err == nil {
		return
	}

	s.log.Error("user service operation failed",
		slog.String("operation", operation),
		slog.Int64("user_id", userID),
		slog.Any("error", err),
	)
}
