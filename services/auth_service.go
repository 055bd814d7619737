package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
	"github.com/Dosada05/betting-league/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// welcomeBalance is credited to every new bettor account.
var welcomeBalance = decimal.NewFromInt(100)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type RegisterInput struct {
	FirstName string          `json:"first_name" validate:"required"`
	LastName  string          `json:"last_name" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required"`
	Role      models.UserRole `json:"role" validate:"required,oneof=player referee bettor"`

	// Player profile fields, required when Role is player.
	Level *int `json:"level,omitempty" validate:"omitempty,gt=0"`
	// Referee contact, optional.
	Contact *string `json:"contact,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authService struct {
	userRepo    repositories.UserRepository
	playerRepo  repositories.PlayerRepository
	refereeRepo repositories.RefereeRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	playerRepo repositories.PlayerRepository,
	refereeRepo repositories.RefereeRepository,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		playerRepo:  playerRepo,
		refereeRepo: refereeRepo,
	}
}

// Register creates a user account and, depending on the role, its player or
// referee profile. Admins are never created through the public endpoint.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	switch input.Role {
	case models.RolePlayer, models.RoleReferee, models.RoleBettor:
	default:
		return nil, ErrInvalidRole
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         input.Role,
		Balance:      decimal.Zero,
	}
	if input.Role == models.RoleBettor {
		user.Balance = welcomeBalance
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	switch input.Role {
	case models.RolePlayer:
		level := 1
		if input.Level != nil {
			level = *input.Level
		}
		player := &models.Player{
			UserID:    user.ID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Level:     level,
		}
		if err := s.playerRepo.Create(ctx, player); err != nil {
			if errors.Is(err, repositories.ErrPlayerAlreadyExists) {
				return nil, ErrProfileExists
			}
			return nil, fmt.Errorf("failed to create player profile: %w", err)
		}
	case models.RoleReferee:
		referee := &models.Referee{
			UserID:    user.ID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Contact:   input.Contact,
		}
		if err := s.refereeRepo.Create(ctx, referee); err != nil {
			if errors.Is(err, repositories.ErrRefereeAlreadyExists) {
				return nil, ErrProfileExists
			}
			return nil, fmt.Errorf("failed to create referee profile: %w", err)
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}
