package models

import "time"

type Referee struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Contact   *string   `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
