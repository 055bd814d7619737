package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/betting-league/models"
	"github.com/lib/pq"
)

var ErrRechargeUserInvalid = errors.New("recharge user conflict or invalid")

type RechargeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, recharge *models.Recharge) error
	ListByUser(ctx context.Context, userID int) ([]*models.Recharge, error)
}

type postgresRechargeRepository struct {
	db *sql.DB
}

func NewPostgresRechargeRepository(db *sql.DB) RechargeRepository {
	return &postgresRechargeRepository{db: db}
}

func (r *postgresRechargeRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRechargeRepository) Create(ctx context.Context, exec SQLExecutor, recharge *models.Recharge) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO recharges (user_id, amount, method, payment_data, payment_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		recharge.UserID,
		recharge.Amount,
		recharge.Method,
		recharge.PaymentData,
		recharge.PaymentRef,
	).Scan(&recharge.ID, &recharge.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" && pqErr.Constraint == "recharges_user_id_fkey" {
			return ErrRechargeUserInvalid
		}
		return err
	}
	return nil
}

func (r *postgresRechargeRepository) ListByUser(ctx context.Context, userID int) ([]*models.Recharge, error) {
	query := `
		SELECT id, user_id, amount, method, payment_data, payment_ref, created_at
		FROM recharges
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recharges := make([]*models.Recharge, 0)
	for rows.Next() {
		recharge := &models.Recharge{}
		if err := rows.Scan(
			&recharge.ID,
			&recharge.UserID,
			&recharge.Amount,
			&recharge.Method,
			&recharge.PaymentData,
			&recharge.PaymentRef,
			&recharge.CreatedAt,
		); err != nil {
			return nil, err
		}
		recharges = append(recharges, recharge)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return recharges, nil
}
