package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
	"github.com/Dosada05/betting-league/storage"
	"github.com/google/uuid"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	RenameTeam(ctx context.Context, id int, name string) (*models.Team, error)
	// DeleteTeam refuses to delete a team that still has matches.
	DeleteTeam(ctx context.Context, id int) error
	UploadCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error)
}

type CreateTeamInput struct {
	Name string `json:"name" validate:"required"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	uploader   storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		uploader:   uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	players, err := s.playerRepo.ListByTeamID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster of team %d: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}

	s.fillCrestURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		s.fillCrestURL(team)
	}
	return teams, nil
}

func (s *teamService) RenameTeam(ctx context.Context, id int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if err := s.teamRepo.Rename(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to rename team %d: %w", id, err)
	}
	return s.teamRepo.GetByID(ctx, id)
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	count, err := s.matchRepo.CountByTeam(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count matches of team %d: %w", id, err)
	}
	if count > 0 {
		return ErrTeamHasMatches
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return nil
}

func (s *teamService) UploadCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	ext := extensionForContentType(contentType)
	if ext == "" {
		return nil, ErrValidationFailed
	}

	key := path.Join("crests", fmt.Sprintf("team_%d_%s%s", id, uuid.NewString(), ext))
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", id, err)
	}

	oldKey := team.CrestKey
	if err := s.teamRepo.UpdateCrestKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store crest key for team %d: %w", id, err)
	}
	if oldKey != nil {
		// Best effort; a dangling object is not worth failing the request.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.CrestKey = &result.Key
	s.fillCrestURL(team)
	return team, nil
}

func (s *teamService) fillCrestURL(team *models.Team) {
	if team.CrestKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.CrestKey)
		team.CrestURL = &url
	}
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/svg+xml":
		return ".svg"
	case "image/webp":
		return ".webp"
	}
	return ""
}
