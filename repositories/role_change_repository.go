package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/betting-league/models"
)

type RoleChangeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, change *models.RoleChange) error
	List(ctx context.Context) ([]*models.RoleChange, error)
}

type postgresRoleChangeRepository struct {
	db *sql.DB
}

func NewPostgresRoleChangeRepository(db *sql.DB) RoleChangeRepository {
	return &postgresRoleChangeRepository{db: db}
}

func (r *postgresRoleChangeRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRoleChangeRepository) Create(ctx context.Context, exec SQLExecutor, change *models.RoleChange) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO role_changes (user_id, old_role, new_role, changed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return executor.QueryRowContext(ctx, query,
		change.UserID,
		change.OldRole,
		change.NewRole,
		change.ChangedBy,
	).Scan(&change.ID, &change.CreatedAt)
}

func (r *postgresRoleChangeRepository) List(ctx context.Context) ([]*models.RoleChange, error) {
	query := `
		SELECT id, user_id, old_role, new_role, changed_by, created_at
		FROM role_changes
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := make([]*models.RoleChange, 0)
	for rows.Next() {
		change := &models.RoleChange{}
		if err := rows.Scan(
			&change.ID,
			&change.UserID,
			&change.OldRole,
			&change.NewRole,
			&change.ChangedBy,
			&change.CreatedAt,
		); err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}
