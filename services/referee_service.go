package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
)

type RefereeService interface {
	ListReferees(ctx context.Context) ([]*models.Referee, error)
	GetRefereeByID(ctx context.Context, id int) (*models.Referee, error)
}

type refereeService struct {
	refereeRepo repositories.RefereeRepository
}

func NewRefereeService(refereeRepo repositories.RefereeRepository) RefereeService {
	return &refereeService{refereeRepo: refereeRepo}
}

func (s *refereeService) ListReferees(ctx context.Context) ([]*models.Referee, error) {
	referees, err := s.refereeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list referees: %w", err)
	}
	return referees, nil
}

func (s *refereeService) GetRefereeByID(ctx context.Context, id int) (*models.Referee, error) {
	referee, err := s.refereeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRefereeNotFound) {
			return nil, ErrRefereeNotFound
		}
		return nil, fmt.Errorf("failed to get referee %d: %w", id, err)
	}
	return referee, nil
}
