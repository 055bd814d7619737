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
	ErrRefereeNotFound      = errors.New("referee not found")
	ErrRefereeAlreadyExists = errors.New("referee profile already exists for this user")
)

type RefereeRepository interface {
	Create(ctx context.Context, referee *models.Referee) error
	GetByID(ctx context.Context, id int) (*models.Referee, error)
	List(ctx context.Context) ([]*models.Referee, error)
}

type postgresRefereeRepository struct {
	db *sql.DB
}

func NewPostgresRefereeRepository(db *sql.DB) RefereeRepository {
	return &postgresRefereeRepository{db: db}
}

func (r *postgresRefereeRepository) Create(ctx context.Context, referee *models.Referee) error {
	query := `
		INSERT INTO referees (user_id, first_name, last_name, contact)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		referee.UserID,
		referee.FirstName,
		referee.LastName,
		referee.Contact,
	).Scan(&referee.ID, &referee.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "referees_user_id_key" {
			return ErrRefereeAlreadyExists
		}
		return err
	}
	return nil
}

func (r *postgresRefereeRepository) GetByID(ctx context.Context, id int) (*models.Referee, error) {
	query := `SELECT id, user_id, first_name, last_name, contact, created_at FROM referees WHERE id = $1`

	referee := &models.Referee{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&referee.ID,
		&referee.UserID,
		&referee.FirstName,
		&referee.LastName,
		&referee.Contact,
		&referee.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRefereeNotFound
		}
		return nil, fmt.Errorf("failed to scan referee %d: %w", id, err)
	}
	return referee, nil
}

func (r *postgresRefereeRepository) List(ctx context.Context) ([]*models.Referee, error) {
	query := `SELECT id, user_id, first_name, last_name, contact, created_at FROM referees ORDER BY last_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	referees := make([]*models.Referee, 0)
	for rows.Next() {
		referee := &models.Referee{}
		if err := rows.Scan(
			&referee.ID,
			&referee.UserID,
			&referee.FirstName,
			&referee.LastName,
			&referee.Contact,
			&referee.CreatedAt,
		); err != nil {
			return nil, err
		}
		referees = append(referees, referee)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return referees, nil
}
