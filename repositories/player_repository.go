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
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerAlreadyExists = errors.New("player profile already exists for this user")
	ErrShirtNumberConflict = errors.New("shirt number already taken on this team")
	ErrPlayerTeamInvalid   = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	ListByTeamID(ctx context.Context, teamID int) ([]*models.Player, error)
	CountByTeamID(ctx context.Context, teamID int) (int, error)
	AssignTeam(ctx context.Context, id int, teamID int, shirtNumber *int, position *string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, user_id, first_name, last_name, level, team_id, shirt_number, position,
	matches_played, goals, assists, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (user_id, first_name, last_name, level, team_id, shirt_number, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.UserID,
		player.FirstName,
		player.LastName,
		player.Level,
		player.TeamID,
		player.ShirtNumber,
		player.Position,
	).Scan(&player.ID, &player.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "players_user_id_key" {
					return ErrPlayerAlreadyExists
				}
				if pqErr.Constraint == "players_team_shirt_number_key" {
					return ErrShirtNumberConflict
				}
			case "23503":
				if pqErr.Constraint == "players_team_id_fkey" {
					return ErrPlayerTeamInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player, err := r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player %d: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY last_name ASC, first_name ASC`
	return r.queryPlayers(ctx, query)
}

func (r *postgresPlayerRepository) ListByTeamID(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1 ORDER BY shirt_number ASC NULLS LAST, last_name ASC`
	return r.queryPlayers(ctx, query, teamID)
}

func (r *postgresPlayerRepository) CountByTeamID(ctx context.Context, teamID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresPlayerRepository) AssignTeam(ctx context.Context, id int, teamID int, shirtNumber *int, position *string) error {
	query := `
		UPDATE players SET team_id = $1, shirt_number = $2, position = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, teamID, shirtNumber, position, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "players_team_shirt_number_key" {
					return ErrShirtNumberConflict
				}
			case "23503":
				if pqErr.Constraint == "players_team_id_fkey" {
					return ErrPlayerTeamInvalid
				}
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]*models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, scanErr := r.scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	player := &models.Player{}
	err := row.Scan(
		&player.ID,
		&player.UserID,
		&player.FirstName,
		&player.LastName,
		&player.Level,
		&player.TeamID,
		&player.ShirtNumber,
		&player.Position,
		&player.MatchesPlayed,
		&player.Goals,
		&player.Assists,
		&player.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return player, nil
}
