package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_status,priority:1"`
	Type           string          `gorm:"not null;size:20;index:idx_transactions_type_status,priority:1"`
	Amount         decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Currency       string          `gorm:"not null;size:3"`
	Status         string          `gorm:"not null;size:20;index:idx_transactions_user_status,priority:2;index:idx_transactions_type_status,priority:2"`
	Reference      string          `gorm:"not null;size:64;uniqueIndex"`
	Description    *string         `gorm:"type:text"`
	RecipientName  *string         `gorm:"size:255"`
	RecipientEmail *string         `gorm:"size:255"`
	CreatedAt      time.Time       `gorm:"not null;index"`
	UpdatedAt      time.Time       `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
