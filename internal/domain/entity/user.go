package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an account holder of the ledger
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Country      string
	Phone        string
	Balance      decimal.Decimal // stored balance, maintained by provisioning, never recomputed here
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserBalance is the result of a balance lookup
type UserBalance struct {
	UserID   uuid.UUID
	UserName string
	Balance  decimal.Decimal
}

// ToBalance returns the stored balance of the user verbatim
func (u *User) ToBalance() *UserBalance {
	return &UserBalance{
		UserID:   u.ID,
		UserName: u.Name,
		Balance:  u.Balance,
	}
}
