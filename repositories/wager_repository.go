package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/betting-league/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	ErrWagerNotFound     = errors.New("wager not found")
	ErrWagerMatchInvalid = errors.New("wager match conflict or invalid")
	ErrWagerTeamInvalid  = errors.New("wager team conflict or invalid")
)

const wagerColumns = `id, user_id, match_id, team_id, amount, placed_at, won, settled`

type WagerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, wager *models.Wager) error
	GetByID(ctx context.Context, id int) (*models.Wager, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Wager, error)
	// ListByMatchForUpdate locks the match's wagers inside the caller's
	// transaction so settlement sees a stable set.
	ListByMatchForUpdate(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Wager, error)
	CountByMatch(ctx context.Context, matchID int) (int, error)
	SetOutcome(ctx context.Context, exec SQLExecutor, id int, won bool) error
	SumWonAmountByTeam(ctx context.Context, teamID int) (decimal.Decimal, error)
}

type postgresWagerRepository struct {
	db *sql.DB
}

func NewPostgresWagerRepository(db *sql.DB) WagerRepository {
	return &postgresWagerRepository{db: db}
}

func (r *postgresWagerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresWagerRepository) Create(ctx context.Context, exec SQLExecutor, wager *models.Wager) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO wagers (user_id, match_id, team_id, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, placed_at`

	err := executor.QueryRowContext(ctx, query,
		wager.UserID,
		wager.MatchID,
		wager.TeamID,
		wager.Amount,
	).Scan(&wager.ID, &wager.PlacedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "wagers_match_id_fkey":
				return ErrWagerMatchInvalid
			case "wagers_team_id_fkey":
				return ErrWagerTeamInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresWagerRepository) GetByID(ctx context.Context, id int) (*models.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE id = $1`
	wager, err := scanWager(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWagerNotFound
		}
		return nil, fmt.Errorf("failed to scan wager %d: %w", id, err)
	}
	return wager, nil
}

func (r *postgresWagerRepository) ListByUser(ctx context.Context, userID int) ([]*models.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE user_id = $1 ORDER BY placed_at DESC, id DESC`
	return r.queryWagers(ctx, r.db, query, userID)
}

func (r *postgresWagerRepository) ListByMatchForUpdate(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Wager, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE match_id = $1 ORDER BY id ASC FOR UPDATE`
	return r.queryWagers(ctx, executor, query, matchID)
}

func (r *postgresWagerRepository) CountByMatch(ctx context.Context, matchID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wagers WHERE match_id = $1`, matchID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresWagerRepository) SetOutcome(ctx context.Context, exec SQLExecutor, id int, won bool) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE wagers SET won = $1, settled = TRUE WHERE id = $2`, won, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrWagerNotFound)
}

func (r *postgresWagerRepository) SumWonAmountByTeam(ctx context.Context, teamID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM wagers WHERE team_id = $1 AND won = TRUE`,
		teamID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *postgresWagerRepository) queryWagers(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]*models.Wager, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wagers := make([]*models.Wager, 0)
	for rows.Next() {
		wager, scanErr := scanWager(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		wagers = append(wagers, wager)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return wagers, nil
}

func scanWager(row interface{ Scan(...interface{}) error }) (*models.Wager, error) {
	wager := &models.Wager{}
	err := row.Scan(
		&wager.ID,
		&wager.UserID,
		&wager.MatchID,
		&wager.TeamID,
		&wager.Amount,
		&wager.PlacedAt,
		&wager.Won,
		&wager.Settled,
	)
	if err != nil {
		return nil, err
	}
	return wager, nil
}
