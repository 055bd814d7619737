package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/betting-league/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchTeamInvalid     = errors.New("match team conflict or invalid")
	ErrMatchRefereeInvalid  = errors.New("match referee conflict or invalid")
	ErrMatchAlreadyResolved = errors.New("match already resolved")
)

const matchColumns = `id, local_team_id, visitor_team_id, referee_id, kickoff,
	goals_local, goals_visitor, winner_team_id, resolved, settled, created_at`

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// GetByIDForUpdate locks the match row inside the caller's transaction.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error)
	ListResolved(ctx context.Context) ([]*models.Match, error)
	UpdateKickoff(ctx context.Context, id int, kickoff time.Time) error
	Delete(ctx context.Context, id int) error
	CountByTeam(ctx context.Context, teamID int) (int, error)
	// SetResult records goals, winner and the resolved flag; it refuses to
	// touch a match that is already resolved.
	SetResult(ctx context.Context, exec SQLExecutor, id int, goalsLocal, goalsVisitor int, winnerTeamID *int) error
	MarkSettled(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (local_team_id, visitor_team_id, referee_id, kickoff)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.LocalTeamID,
		match.VisitorTeamID,
		match.RefereeID,
		match.Kickoff,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "matches_local_team_id_fkey", "matches_visitor_team_id_fkey":
				return ErrMatchTeamInvalid
			case "matches_referee_id_fkey":
				return ErrMatchRefereeInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
	match, err := scanMatch(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to lock match %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := make([]interface{}, 0, 4)
	placeholder := 1

	appendCondition := func(condition string, value interface{}) {
		queryBuilder.WriteString(" AND ")
		queryBuilder.WriteString(strings.Replace(condition, "?", "$"+strconv.Itoa(placeholder), 1))
		args = append(args, value)
		placeholder++
	}

	if filter.TeamID != nil {
		queryBuilder.WriteString(" AND (local_team_id = $" + strconv.Itoa(placeholder) +
			" OR visitor_team_id = $" + strconv.Itoa(placeholder) + ")")
		args = append(args, *filter.TeamID)
		placeholder++
	}
	if filter.RefereeID != nil {
		appendCondition("referee_id = ?", *filter.RefereeID)
	}
	if filter.From != nil {
		appendCondition("kickoff >= ?", *filter.From)
	}
	if filter.To != nil {
		appendCondition("kickoff <= ?", *filter.To)
	}
	if filter.Resolved != nil {
		appendCondition("resolved = ?", *filter.Resolved)
	}

	queryBuilder.WriteString(" ORDER BY kickoff ASC, id ASC")

	return r.queryMatches(ctx, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListResolved(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE resolved = TRUE ORDER BY kickoff ASC, id ASC`
	return r.queryMatches(ctx, query)
}

func (r *postgresMatchRepository) UpdateKickoff(ctx context.Context, id int, kickoff time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE matches SET kickoff = $1 WHERE id = $2`, kickoff, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) CountByTeam(ctx context.Context, teamID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE local_team_id = $1 OR visitor_team_id = $1`,
		teamID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresMatchRepository) SetResult(ctx context.Context, exec SQLExecutor, id int, goalsLocal, goalsVisitor int, winnerTeamID *int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET goals_local = $1, goals_visitor = $2, winner_team_id = $3, resolved = TRUE
		WHERE id = $4 AND resolved = FALSE`

	result, err := executor.ExecContext(ctx, query, goalsLocal, goalsVisitor, winnerTeamID, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		// Either the match does not exist or the guard rejected a re-resolve.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrMatchAlreadyResolved
	}
	return nil
}

func (r *postgresMatchRepository) MarkSettled(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE matches SET settled = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID,
		&match.LocalTeamID,
		&match.VisitorTeamID,
		&match.RefereeID,
		&match.Kickoff,
		&match.GoalsLocal,
		&match.GoalsVisitor,
		&match.WinnerTeamID,
		&match.Resolved,
		&match.Settled,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}
