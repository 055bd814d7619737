package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wager is a stake placed by a bettor on one team of a specific match.
// Won is meaningful only once Settled is true.
type Wager struct {
	ID       int             `json:"id"`
	UserID   int             `json:"user_id"`
	MatchID  int             `json:"match_id"`
	TeamID   int             `json:"team_id"`
	Amount   decimal.Decimal `json:"amount"`
	PlacedAt time.Time       `json:"placed_at"`
	Won      bool            `json:"won"`
	Settled  bool            `json:"settled"`

	Match *Match `json:"match,omitempty"`
	Team  *Team  `json:"team,omitempty"`
}
