package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recharge is an append-only audit record of a balance top-up.
type Recharge struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	PaymentData *string         `json:"payment_data,omitempty"`
	PaymentRef  string          `json:"payment_ref"`
	CreatedAt   time.Time       `json:"created_at"`
}
