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
	ErrUserNotFound        = errors.New("user not found")
	ErrUserEmailConflict   = errors.New("user email conflict")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, exec SQLExecutor, id int, role models.UserRole) error
	GetBalance(ctx context.Context, id int) (decimal.Decimal, error)
	// CreditBalance and DebitBalance mutate the stored balance with a single
	// atomic UPDATE; the debit is conditional on sufficient funds so no
	// read-modify-write happens in application code.
	CreditBalance(ctx context.Context, exec SQLExecutor, id int, amount decimal.Decimal) (decimal.Decimal, error)
	DebitBalance(ctx context.Context, exec SQLExecutor, id int, amount decimal.Decimal) (decimal.Decimal, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, role, balance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Balance,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "users_email_key" {
			return ErrUserEmailConflict
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, role, balance, created_at
		FROM users
		WHERE id = $1`
	return r.scanUser(ctx, query, id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, role, balance, created_at
		FROM users
		WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, exec SQLExecutor, id int, role models.UserRole) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) GetBalance(ctx context.Context, id int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT balance FROM users WHERE id = $1`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *postgresUserRepository) CreditBalance(ctx context.Context, exec SQLExecutor, id int, amount decimal.Decimal) (decimal.Decimal, error) {
	executor := r.getExecutor(exec)
	var newBalance decimal.Decimal
	err := executor.QueryRowContext(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount, id,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to credit balance of user %d: %w", id, err)
	}
	return newBalance, nil
}

func (r *postgresUserRepository) DebitBalance(ctx context.Context, exec SQLExecutor, id int, amount decimal.Decimal) (decimal.Decimal, error) {
	executor := r.getExecutor(exec)
	var newBalance decimal.Decimal
	err := executor.QueryRowContext(ctx,
		`UPDATE users SET balance = balance - $1 WHERE id = $2 AND balance >= $1 RETURNING balance`,
		amount, id,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The guard rejected the debit; find out whether the user exists
			// to tell NotFound apart from an overdraft attempt.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return decimal.Zero, getErr
			}
			return decimal.Zero, ErrInsufficientBalance
		}
		return decimal.Zero, fmt.Errorf("failed to debit balance of user %d: %w", id, err)
	}
	return newBalance, nil
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Balance,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
