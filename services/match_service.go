package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error)
	UpdateKickoff(ctx context.Context, id int, kickoff time.Time) (*models.Match, error)
	// DeleteMatch refuses to delete a match that has wagers on it.
	DeleteMatch(ctx context.Context, id int) error
	// GenerateRoundRobin schedules one fixture for every pair of teams in
	// the catalog, spaced by interval starting from start.
	GenerateRoundRobin(ctx context.Context, start time.Time, interval time.Duration) ([]*models.Match, error)
}

type CreateMatchInput struct {
	LocalID   int       `json:"local_id" validate:"required,gt=0"`
	VisitorID int       `json:"visitor_id" validate:"required,gt=0"`
	RefereeID *int      `json:"referee_id,omitempty" validate:"omitempty,gt=0"`
	Kickoff   time.Time `json:"kickoff" validate:"required"`
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	teamRepo    repositories.TeamRepository
	refereeRepo repositories.RefereeRepository
	wagerRepo   repositories.WagerRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	refereeRepo repositories.RefereeRepository,
	wagerRepo repositories.WagerRepository,
) MatchService {
	return &matchService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		refereeRepo: refereeRepo,
		wagerRepo:   wagerRepo,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.LocalID == input.VisitorID {
		return nil, ErrSameTeams
	}

	for _, teamID := range []int{input.LocalID, input.VisitorID} {
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
	}
	if input.RefereeID != nil {
		if _, err := s.refereeRepo.GetByID(ctx, *input.RefereeID); err != nil {
			if errors.Is(err, repositories.ErrRefereeNotFound) {
				return nil, ErrRefereeNotFound
			}
			return nil, err
		}
	}

	match := &models.Match{
		LocalTeamID:   input.LocalID,
		VisitorTeamID: input.VisitorID,
		RefereeID:     input.RefereeID,
		Kickoff:       input.Kickoff,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	s.enrich(ctx, match)
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	for _, match := range matches {
		s.enrich(ctx, match)
	}
	return matches, nil
}

func (s *matchService) UpdateKickoff(ctx context.Context, id int, kickoff time.Time) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Resolved {
		return nil, ErrMatchResolved
	}

	if err := s.matchRepo.UpdateKickoff(ctx, id, kickoff); err != nil {
		return nil, fmt.Errorf("failed to update kickoff of match %d: %w", id, err)
	}
	match.Kickoff = kickoff
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	count, err := s.wagerRepo.CountByMatch(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count wagers of match %d: %w", id, err)
	}
	if count > 0 {
		return ErrMatchHasWagers
	}

	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) GenerateRoundRobin(ctx context.Context, start time.Time, interval time.Duration) ([]*models.Match, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	matches := make([]*models.Match, 0, len(teams)*(len(teams)-1)/2)
	kickoff := start
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			match := &models.Match{
				LocalTeamID:   teams[i].ID,
				VisitorTeamID: teams[j].ID,
				Kickoff:       kickoff,
			}
			if err := s.matchRepo.Create(ctx, match); err != nil {
				return nil, fmt.Errorf("failed to create fixture %s vs %s: %w", teams[i].Name, teams[j].Name, err)
			}
			matches = append(matches, match)
			kickoff = kickoff.Add(interval)
		}
	}
	return matches, nil
}

// enrich attaches team and referee details; lookup failures are not fatal
// for a listing, the bare ids are still returned.
func (s *matchService) enrich(ctx context.Context, match *models.Match) {
	if local, err := s.teamRepo.GetByID(ctx, match.LocalTeamID); err == nil {
		match.Local = local
	}
	if visitor, err := s.teamRepo.GetByID(ctx, match.VisitorTeamID); err == nil {
		match.Visitor = visitor
	}
	if match.RefereeID != nil {
		if referee, err := s.refereeRepo.GetByID(ctx, *match.RefereeID); err == nil {
			match.Referee = referee
		}
	}
}
