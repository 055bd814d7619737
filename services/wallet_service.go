package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/betting-league/metrics"
	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletService interface {
	GetBalance(ctx context.Context, userID int) (decimal.Decimal, error)
	Recharge(ctx context.Context, userID int, input RechargeInput) (*models.Recharge, decimal.Decimal, error)
	ListRecharges(ctx context.Context, userID int) ([]*models.Recharge, error)
}

type RechargeInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method" validate:"required"`
	PaymentData *string         `json:"payment_data,omitempty"`
}

type walletService struct {
	db           *sql.DB
	userRepo     repositories.UserRepository
	rechargeRepo repositories.RechargeRepository
}

func NewWalletService(
	db *sql.DB,
	userRepo repositories.UserRepository,
	rechargeRepo repositories.RechargeRepository,
) WalletService {
	return &walletService{
		db:           db,
		userRepo:     userRepo,
		rechargeRepo: rechargeRepo,
	}
}

func (s *walletService) GetBalance(ctx context.Context, userID int) (decimal.Decimal, error) {
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Recharge credits the user's balance and writes the append-only audit
// record in one transaction. The credit itself is a single atomic UPDATE.
func (s *walletService) Recharge(ctx context.Context, userID int, input RechargeInput) (*models.Recharge, decimal.Decimal, error) {
	if !input.Amount.IsPositive() {
		return nil, decimal.Zero, ErrAmountNotPositive
	}
	if input.Method == "" {
		return nil, decimal.Zero, ErrValidationFailed
	}

	recharge := &models.Recharge{
		UserID:      userID,
		Amount:      input.Amount,
		Method:      input.Method,
		PaymentData: input.PaymentData,
		PaymentRef:  uuid.NewString(),
	}

	var newBalance decimal.Decimal
	err := runInTx(ctx, s.db, func(exec repositories.SQLExecutor) error {
		var txErr error
		newBalance, txErr = s.userRepo.CreditBalance(ctx, exec, userID, input.Amount)
		if txErr != nil {
			if errors.Is(txErr, repositories.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return txErr
		}
		return s.rechargeRepo.Create(ctx, exec, recharge)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	metrics.RechargesProcessed.Inc()
	return recharge, newBalance, nil
}

func (s *walletService) ListRecharges(ctx context.Context, userID int) ([]*models.Recharge, error) {
	recharges, err := s.rechargeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recharges for user %d: %w", userID, err)
	}
	return recharges, nil
}
