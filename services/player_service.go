package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
)

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	// AssignPlayer moves a player to a team, optionally with a shirt number
	// and position. An occupied shirt number on the destination team is a
	// conflict.
	AssignPlayer(ctx context.Context, input AssignPlayerInput) (*models.Player, error)
}

type AssignPlayerInput struct {
	PlayerID    int     `json:"player_id" validate:"required,gt=0"`
	TeamID      int     `json:"team_id" validate:"required,gt=0"`
	ShirtNumber *int    `json:"shirt_number,omitempty" validate:"omitempty,gt=0"`
	Position    *string `json:"position,omitempty"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) AssignPlayer(ctx context.Context, input AssignPlayerInput) (*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	err := s.playerRepo.AssignTeam(ctx, input.PlayerID, input.TeamID, input.ShirtNumber, input.Position)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrShirtNumberConflict):
			return nil, ErrShirtNumberConflict
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to assign player %d to team %d: %w", input.PlayerID, input.TeamID, err)
	}

	return s.playerRepo.GetByID(ctx, input.PlayerID)
}
