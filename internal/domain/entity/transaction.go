package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents what a transaction did to the wallet
type TransactionType string

// Transaction types
const (
	TypeSendMoney  TransactionType = "SEND_MONEY"
	TypeFundWallet TransactionType = "FUND_WALLET"
	TypeWithdraw   TransactionType = "WITHDRAW"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending    TransactionStatus = "PENDING"
	StatusSuccessful TransactionStatus = "SUCCESSFUL"
	StatusFailed     TransactionStatus = "FAILED"
)

// CurrencyCodeLength is the number of characters in a currency code
const CurrencyCodeLength = 3

// TransactionTypes lists the closed set of transaction types in declaration order
func TransactionTypes() []TransactionType {
	return []TransactionType{TypeSendMoney, TypeFundWallet, TypeWithdraw}
}

// TransactionStatuses lists the closed set of transaction statuses in declaration order
func TransactionStatuses() []TransactionStatus {
	return []TransactionStatus{StatusPending, StatusSuccessful, StatusFailed}
}

// IsValidTransactionType validates if the type is one of the allowed values
func IsValidTransactionType(value string) bool {
	for _, t := range TransactionTypes() {
		if string(t) == value {
			return true
		}
	}
	return false
}

// IsValidTransactionStatus validates if the status is one of the allowed values
func IsValidTransactionStatus(value string) bool {
	for _, s := range TransactionStatuses() {
		if string(s) == value {
			return true
		}
	}
	return false
}

// Transaction is a single ledger entry owned by a user
type Transaction struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Type           TransactionType
	Amount         decimal.Decimal // numeric(15,2), never negative
	Currency       string
	Status         TransactionStatus
	Reference      string // unique, human readable
	Description    *string
	RecipientName  *string
	RecipientEmail *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// User is the owning user when it was loaded alongside the transaction
	User *User
}

// IsOutgoing reports whether the transaction moves money out of the wallet
func (t *Transaction) IsOutgoing() bool {
	return t.Type == TypeSendMoney || t.Type == TypeWithdraw
}

// IsIncoming reports whether the transaction moves money into the wallet
func (t *Transaction) IsIncoming() bool {
	return t.Type == TypeFundWallet
}

// UserName returns the owning user's name, or an empty string when the user was not loaded
func (t *Transaction) UserName() string {
	if t.User == nil {
		return ""
	}
	return t.User.Name
}

// TransactionFilter holds validated search criteria; nil fields impose no constraint
type TransactionFilter struct {
	Type     *TransactionType
	Status   *TransactionStatus
	Currency *string
	Limit    int // 0 means no cap
}
