package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/betting-league/metrics"
	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
	"github.com/shopspring/decimal"
)

type BettingService interface {
	// PlaceWager debits the stake and records the wager in one transaction.
	// A wager is only accepted on an unresolved match whose kickoff is
	// still in the future, on one of the two teams actually playing.
	PlaceWager(ctx context.Context, userID int, input PlaceWagerInput) (*models.Wager, decimal.Decimal, error)
	ListUserWagers(ctx context.Context, userID int) ([]*models.Wager, error)
}

type PlaceWagerInput struct {
	MatchID int             `json:"match_id" validate:"required,gt=0"`
	TeamID  int             `json:"team_id" validate:"required,gt=0"`
	Amount  decimal.Decimal `json:"amount"`
}

type bettingService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	wagerRepo repositories.WagerRepository
	userRepo  repositories.UserRepository

	// now is swapped for a fixed clock in tests.
	now func() time.Time
}

func NewBettingService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	wagerRepo repositories.WagerRepository,
	userRepo repositories.UserRepository,
) BettingService {
	return &bettingService{
		db:        db,
		matchRepo: matchRepo,
		wagerRepo: wagerRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

func (s *bettingService) PlaceWager(ctx context.Context, userID int, input PlaceWagerInput) (*models.Wager, decimal.Decimal, error) {
	if !input.Amount.IsPositive() {
		return nil, decimal.Zero, ErrAmountNotPositive
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, decimal.Zero, ErrMatchNotFound
		}
		return nil, decimal.Zero, err
	}

	// A resolved match or one whose kickoff has passed takes no wagers,
	// regardless of resolution state.
	if match.Resolved || !match.Kickoff.After(s.now()) {
		return nil, decimal.Zero, ErrMatchAlreadyStarted
	}
	if !match.HasTeam(input.TeamID) {
		return nil, decimal.Zero, ErrTeamNotInMatch
	}

	wager := &models.Wager{
		UserID:  userID,
		MatchID: input.MatchID,
		TeamID:  input.TeamID,
		Amount:  input.Amount,
	}

	var newBalance decimal.Decimal
	err = runInTx(ctx, s.db, func(exec repositories.SQLExecutor) error {
		var txErr error
		newBalance, txErr = s.userRepo.DebitBalance(ctx, exec, userID, input.Amount)
		if txErr != nil {
			switch {
			case errors.Is(txErr, repositories.ErrInsufficientBalance):
				return ErrInsufficientFunds
			case errors.Is(txErr, repositories.ErrUserNotFound):
				return ErrUserNotFound
			}
			return txErr
		}
		return s.wagerRepo.Create(ctx, exec, wager)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	metrics.WagersPlaced.Inc()
	return wager, newBalance, nil
}

func (s *bettingService) ListUserWagers(ctx context.Context, userID int) ([]*models.Wager, error) {
	wagers, err := s.wagerRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wagers of user %d: %w", userID, err)
	}
	for _, wager := range wagers {
		if match, matchErr := s.matchRepo.GetByID(ctx, wager.MatchID); matchErr == nil {
			wager.Match = match
		}
	}
	return wagers, nil
}
