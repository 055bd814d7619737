package models

import "github.com/shopspring/decimal"

// TeamStats aggregates one team's resolved matches into league-table figures.
type TeamStats struct {
	TeamID         int    `json:"team_id"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`

	// Permutations is roster! rendered as a decimal string, or "too large"
	// when the roster exceeds 10 players. Combinations is C(roster, 11),
	// zero for rosters smaller than a full lineup.
	Permutations string `json:"permutations"`
	Combinations int64  `json:"combinations"`

	// Revenue is the sum of won-wager amounts placed on this team.
	Revenue decimal.Decimal `json:"revenue"`
}
