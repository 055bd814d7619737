package models

import (
	"fmt"
	"time"
)

// Match is a fixture between two distinct teams. Goals and winner stay nil
// until the match is resolved; a nil winner on a resolved match means a draw.
type Match struct {
	ID            int       `json:"id"`
	LocalTeamID   int       `json:"local_team_id"`
	VisitorTeamID int       `json:"visitor_team_id"`
	RefereeID     *int      `json:"referee_id,omitempty"`
	Kickoff       time.Time `json:"kickoff"`
	GoalsLocal    *int      `json:"goals_local,omitempty"`
	GoalsVisitor  *int      `json:"goals_visitor,omitempty"`
	WinnerTeamID  *int      `json:"winner_team_id,omitempty"`
	Resolved      bool      `json:"resolved"`
	Settled       bool      `json:"settled"`
	CreatedAt     time.Time `json:"created_at"`

	Local   *Team    `json:"local,omitempty"`
	Visitor *Team    `json:"visitor,omitempty"`
	Referee *Referee `json:"referee,omitempty"`
}

// HasTeam reports whether teamID is one of the two sides of the match.
func (m *Match) HasTeam(teamID int) bool {
	return m.LocalTeamID == teamID || m.VisitorTeamID == teamID
}

// ResultString renders "2-1" for a resolved match and "Pending" otherwise.
func (m *Match) ResultString() string {
	if !m.Resolved || m.GoalsLocal == nil || m.GoalsVisitor == nil {
		return "Pending"
	}
	return fmt.Sprintf("%d-%d", *m.GoalsLocal, *m.GoalsVisitor)
}

// MatchFilter narrows match listings. Nil fields are ignored.
type MatchFilter struct {
	TeamID    *int
	RefereeID *int
	From      *time.Time
	To        *time.Time
	Resolved  *bool
}
