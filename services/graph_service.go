package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
)

type GraphService interface {
	// BuildScheduleGraph links every pair of teams that played a resolved
	// match and walks the graph breadth-first from startTeamID, or from
	// the first team in catalog order when startTeamID is nil.
	BuildScheduleGraph(ctx context.Context, startTeamID *int) (*models.ScheduleGraph, error)
}

type graphService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
}

func NewGraphService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
) GraphService {
	return &graphService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

func (s *graphService) BuildScheduleGraph(ctx context.Context, startTeamID *int) (*models.ScheduleGraph, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if len(teams) == 0 {
		return &models.ScheduleGraph{
			Nodes: []models.GraphNode{},
			Edges: []models.GraphEdge{},
			Order: []int{},
		}, nil
	}

	matches, err := s.matchRepo.ListResolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolved matches: %w", err)
	}

	adjacency := make(map[int]map[int]bool, len(teams))
	for _, team := range teams {
		adjacency[team.ID] = make(map[int]bool)
	}
	for _, match := range matches {
		// A match against a team deleted from the catalog cannot happen
		// (deletes are restricted), but guard the maps anyway.
		if adjacency[match.LocalTeamID] == nil || adjacency[match.VisitorTeamID] == nil {
			continue
		}
		adjacency[match.LocalTeamID][match.VisitorTeamID] = true
		adjacency[match.VisitorTeamID][match.LocalTeamID] = true
	}

	start := teams[0].ID
	if startTeamID != nil {
		if adjacency[*startTeamID] == nil {
			return nil, ErrTeamNotFound
		}
		start = *startTeamID
	}

	order := bfs(adjacency, start)

	visited := make(map[int]bool, len(order))
	for _, teamID := range order {
		visited[teamID] = true
	}

	nodes := make([]models.GraphNode, 0, len(teams))
	for _, team := range teams {
		roster, countErr := s.playerRepo.CountByTeamID(ctx, team.ID)
		if countErr != nil {
			return nil, fmt.Errorf("failed to count roster of team %d: %w", team.ID, countErr)
		}
		nodes = append(nodes, models.GraphNode{
			TeamID:  team.ID,
			Name:    team.Name,
			Visited: visited[team.ID],
			Roster:  roster,
		})
	}

	edges := dedupeEdges(matches)

	return &models.ScheduleGraph{
		Nodes:      nodes,
		Edges:      edges,
		Order:      order,
		TotalTeams: len(teams),
		TotalEdges: len(edges),
	}, nil
}

// bfs walks the adjacency map breadth-first. Neighbors are visited in
// ascending team-id order so the traversal is deterministic.
func bfs(adjacency map[int]map[int]bool, start int) []int {
	visited := map[int]bool{start: true}
	queue := []int{start}
	order := make([]int, 0, len(adjacency))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		neighbors := make([]int, 0, len(adjacency[current]))
		for neighbor := range adjacency[current] {
			neighbors = append(neighbors, neighbor)
		}
		sort.Ints(neighbors)

		for _, neighbor := range neighbors {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}
	return order
}

// dedupeEdges collapses multiple matches between the same pair of teams
// into one edge, keyed by the unordered team pair. The first match seen
// becomes the representative.
func dedupeEdges(matches []*models.Match) []models.GraphEdge {
	seen := make(map[[2]int]bool)
	edges := make([]models.GraphEdge, 0, len(matches))

	for _, match := range matches {
		key := [2]int{match.LocalTeamID, match.VisitorTeamID}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		edges = append(edges, models.GraphEdge{
			SourceTeamID: match.LocalTeamID,
			TargetTeamID: match.VisitorTeamID,
			MatchID:      match.ID,
			Result:       match.ResultString(),
		})
	}
	return edges
}
