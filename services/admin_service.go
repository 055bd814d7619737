package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
)

type AdminService interface {
	// ChangeUserRole updates a user's role and writes the append-only
	// audit record in the same transaction.
	ChangeUserRole(ctx context.Context, userID int, newRole models.UserRole, changedBy int) (*models.RoleChange, error)
	ListRoleChanges(ctx context.Context) ([]*models.RoleChange, error)
}

type adminService struct {
	db             *sql.DB
	userRepo       repositories.UserRepository
	roleChangeRepo repositories.RoleChangeRepository
}

func NewAdminService(
	db *sql.DB,
	userRepo repositories.UserRepository,
	roleChangeRepo repositories.RoleChangeRepository,
) AdminService {
	return &adminService{
		db:             db,
		userRepo:       userRepo,
		roleChangeRepo: roleChangeRepo,
	}
}

func (s *adminService) ChangeUserRole(ctx context.Context, userID int, newRole models.UserRole, changedBy int) (*models.RoleChange, error) {
	if !newRole.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role == newRole {
		return nil, ErrValidationFailed
	}

	change := &models.RoleChange{
		UserID:    userID,
		OldRole:   user.Role,
		NewRole:   newRole,
		ChangedBy: changedBy,
	}

	err = runInTx(ctx, s.db, func(exec repositories.SQLExecutor) error {
		if txErr := s.userRepo.UpdateRole(ctx, exec, userID, newRole); txErr != nil {
			if errors.Is(txErr, repositories.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return txErr
		}
		return s.roleChangeRepo.Create(ctx, exec, change)
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

func (s *adminService) ListRoleChanges(ctx context.Context) ([]*models.RoleChange, error) {
	changes, err := s.roleChangeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list role changes: %w", err)
	}
	return changes, nil
}
