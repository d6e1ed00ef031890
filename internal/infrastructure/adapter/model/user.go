package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents the database model for users
type User struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"not null;size:255"`
	Email     string          `gorm:"not null;size:255;uniqueIndex"`
	Country   string          `gorm:"size:2"`
	Phone     string          `gorm:"size:32"`
	Balance   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Password  string          `gorm:"not null;size:255"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`

	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
