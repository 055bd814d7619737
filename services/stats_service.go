package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
	"golang.org/x/sync/errgroup"
)

// fullLineup is the number of players fielded at once; the combinations
// figure counts the possible lineups of a roster.
const fullLineup = 11

// permutationsTooLarge replaces the factorial for rosters above ten
// players, where the figure stops being worth rendering.
const permutationsTooLarge = "too large"

type StatsService interface {
	// TeamStats aggregates one team's resolved matches, roster
	// combinatorics and won-wager revenue.
	TeamStats(ctx context.Context, teamID int) (*models.TeamStats, error)
	// LeagueTable computes stats for every team and sorts them descending
	// by points, then goal difference. Ties keep catalog (team id) order.
	LeagueTable(ctx context.Context) ([]*models.TeamStats, error)
}

type statsService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	wagerRepo  repositories.WagerRepository
}

func NewStatsService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	wagerRepo repositories.WagerRepository,
) StatsService {
	return &statsService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		wagerRepo:  wagerRepo,
	}
}

func (s *statsService) TeamStats(ctx context.Context, teamID int) (*models.TeamStats, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	resolved, err := s.matchRepo.ListResolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolved matches: %w", err)
	}

	return s.computeTeamStats(ctx, team, resolved)
}

func (s *statsService) LeagueTable(ctx context.Context) ([]*models.TeamStats, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	resolved, err := s.matchRepo.ListResolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolved matches: %w", err)
	}

	table := make([]*models.TeamStats, len(teams))
	g, gCtx := errgroup.WithContext(ctx)
	for i, team := range teams {
		g.Go(func() error {
			stats, statsErr := s.computeTeamStats(gCtx, team, resolved)
			if statsErr != nil {
				return statsErr
			}
			table[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The input is in ascending team-id order, so a stable sort leaves
	// tied teams in that order.
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].GoalDifference > table[j].GoalDifference
	})
	return table, nil
}

func (s *statsService) computeTeamStats(ctx context.Context, team *models.Team, resolved []*models.Match) (*models.TeamStats, error) {
	stats := &models.TeamStats{
		TeamID: team.ID,
		Team:   team.Name,
	}

	for _, match := range resolved {
		if match.GoalsLocal == nil || match.GoalsVisitor == nil {
			continue
		}
		var goalsFor, goalsAgainst int
		switch team.ID {
		case match.LocalTeamID:
			goalsFor, goalsAgainst = *match.GoalsLocal, *match.GoalsVisitor
		case match.VisitorTeamID:
			goalsFor, goalsAgainst = *match.GoalsVisitor, *match.GoalsLocal
		default:
			continue
		}

		stats.Played++
		stats.GoalsFor += goalsFor
		stats.GoalsAgainst += goalsAgainst
		switch {
		case goalsFor > goalsAgainst:
			stats.Wins++
		case goalsFor == goalsAgainst:
			stats.Draws++
		default:
			stats.Losses++
		}
	}

	stats.GoalDifference = stats.GoalsFor - stats.GoalsAgainst
	stats.Points = 3*stats.Wins + stats.Draws

	roster, err := s.playerRepo.CountByTeamID(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count roster of team %d: %w", team.ID, err)
	}
	stats.Permutations = permutations(roster)
	stats.Combinations = combinations(roster, fullLineup)

	revenue, err := s.wagerRepo.SumWonAmountByTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum won wagers on team %d: %w", team.ID, err)
	}
	stats.Revenue = revenue

	return stats, nil
}

// permutations renders n! for rosters of at most ten players; anything
// bigger is reported as too large rather than computed.
func permutations(n int) string {
	if n > 10 {
		return permutationsTooLarge
	}
	result := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		result *= i
	}
	return strconv.FormatInt(result, 10)
}

// combinations returns C(n, k), zero when n < k.
func combinations(n, k int) int64 {
	if n < k {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}
	return result
}
