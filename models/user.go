package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleReferee UserRole = "referee"
	RolePlayer  UserRole = "player"
	RoleBettor  UserRole = "bettor"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleReferee, RolePlayer, RoleBettor:
		return true
	}
	return false
}

type User struct {
	ID           int             `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         UserRole        `json:"role"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}
