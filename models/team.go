package models

import "time"

type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Players []Player `json:"players,omitempty"`

	CrestKey *string `json:"-"`
	CrestURL *string `json:"crest_url,omitempty"`
}
