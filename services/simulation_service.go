package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Dosada05/betting-league/metrics"
	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
	"github.com/shopspring/decimal"
)

// maxGoals bounds the uniform goal draw: each side scores 0..5.
const maxGoals = 5

// winningOdds is the fixed payout multiplier: a winning wager is credited
// stake times this value at settlement. The stake itself was debited when
// the wager was placed.
var winningOdds = decimal.NewFromInt(2)

// ResultPublisher receives a match right after it has been resolved and
// settled. The live websocket hub implements it.
type ResultPublisher interface {
	PublishResult(match *models.Match)
}

type SimulationService interface {
	// SimulateMatch resolves a scheduled match with uniformly drawn goals
	// and settles every wager on it, all in one transaction. Re-simulating
	// a resolved match fails with ErrMatchResolved.
	SimulateMatch(ctx context.Context, matchID int) (*SimulationResult, error)
}

type SimulationResult struct {
	Match         *models.Match `json:"match"`
	WagersSettled int           `json:"wagers_settled"`
	WagersWon     int           `json:"wagers_won"`
}

type simulationService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	wagerRepo repositories.WagerRepository
	userRepo  repositories.UserRepository
	publisher ResultPublisher

	// intN is the goal-draw source; swapped for a seeded one in tests.
	intN func(n int) int
}

func NewSimulationService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	wagerRepo repositories.WagerRepository,
	userRepo repositories.UserRepository,
	publisher ResultPublisher,
) SimulationService {
	return &simulationService{
		db:        db,
		matchRepo: matchRepo,
		wagerRepo: wagerRepo,
		userRepo:  userRepo,
		publisher: publisher,
		intN:      rand.IntN,
	}
}

func (s *simulationService) SimulateMatch(ctx context.Context, matchID int) (*SimulationResult, error) {
	result := &SimulationResult{}

	err := runInTx(ctx, s.db, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByIDForUpdate(ctx, exec, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if match.Resolved {
			return ErrMatchResolved
		}

		goalsLocal := s.intN(maxGoals + 1)
		goalsVisitor := s.intN(maxGoals + 1)
		winner := winnerTeamID(match, goalsLocal, goalsVisitor)

		if err := s.matchRepo.SetResult(ctx, exec, matchID, goalsLocal, goalsVisitor, winner); err != nil {
			if errors.Is(err, repositories.ErrMatchAlreadyResolved) {
				return ErrMatchResolved
			}
			return fmt.Errorf("failed to record result of match %d: %w", matchID, err)
		}

		match.GoalsLocal = &goalsLocal
		match.GoalsVisitor = &goalsVisitor
		match.WinnerTeamID = winner
		match.Resolved = true

		settled, won, err := s.settle(ctx, exec, match)
		if err != nil {
			return err
		}

		if err := s.matchRepo.MarkSettled(ctx, exec, matchID); err != nil {
			return fmt.Errorf("failed to mark match %d settled: %w", matchID, err)
		}
		match.Settled = true

		result.Match = match
		result.WagersSettled = settled
		result.WagersWon = won
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.MatchesSimulated.Inc()
	metrics.WagersSettled.Add(float64(result.WagersSettled))
	if s.publisher != nil {
		s.publisher.PublishResult(result.Match)
	}
	return result, nil
}

// settle marks every wager on the match won or lost and credits winners.
// Runs inside the simulation transaction; the wager rows are locked so the
// set is stable.
func (s *simulationService) settle(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) (settled, won int, err error) {
	wagers, err := s.wagerRepo.ListByMatchForUpdate(ctx, exec, match.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list wagers of match %d: %w", match.ID, err)
	}

	for _, wager := range wagers {
		wagerWon := match.WinnerTeamID != nil && wager.TeamID == *match.WinnerTeamID

		if err := s.wagerRepo.SetOutcome(ctx, exec, wager.ID, wagerWon); err != nil {
			return 0, 0, fmt.Errorf("failed to settle wager %d: %w", wager.ID, err)
		}
		settled++

		if wagerWon {
			payout := wager.Amount.Mul(winningOdds)
			if _, err := s.userRepo.CreditBalance(ctx, exec, wager.UserID, payout); err != nil {
				return 0, 0, fmt.Errorf("failed to credit payout for wager %d: %w", wager.ID, err)
			}
			won++
		}
	}
	return settled, won, nil
}

// winnerTeamID applies strict goal comparison; equal goals mean a draw and
// a nil winner.
func winnerTeamID(match *models.Match, goalsLocal, goalsVisitor int) *int {
	switch {
	case goalsLocal > goalsVisitor:
		return &match.LocalTeamID
	case goalsVisitor > goalsLocal:
		return &match.VisitorTeamID
	}
	return nil
}
