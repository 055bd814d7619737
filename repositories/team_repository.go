package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/betting-league/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Rename(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
	UpdateCrestKey(ctx context.Context, id int, crestKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `INSERT INTO teams (name) VALUES ($1) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, team.Name).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "teams_name_lower_key" {
			return ErrTeamNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, crest_key, created_at FROM teams WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.CrestKey, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team %d: %w", id, err)
	}
	return team, nil
}

// List returns all teams in id order. The catalog order matters: it fixes
// both the default BFS start team and the league-table tie order.
func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT id, name, crest_key, created_at FROM teams ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team := &models.Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.CrestKey, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Rename(ctx context.Context, id int, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "teams_name_lower_key" {
			return ErrTeamNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET crest_key = $1 WHERE id = $2`, crestKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
