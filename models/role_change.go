package models

import "time"

// RoleChange is an append-only audit record; rows are never edited.
type RoleChange struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	OldRole   UserRole  `json:"old_role"`
	NewRole   UserRole  `json:"new_role"`
	ChangedBy int       `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}
