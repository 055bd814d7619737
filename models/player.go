package models

import "time"

type Player struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Level         int       `json:"level"`
	TeamID        *int      `json:"team_id,omitempty"`
	ShirtNumber   *int      `json:"shirt_number,omitempty"`
	Position      *string   `json:"position,omitempty"`
	MatchesPlayed int       `json:"matches_played"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	CreatedAt     time.Time `json:"created_at"`

	Team *Team `json:"team,omitempty"`
}
