package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserStatistics summarizes a user's ledger activity
//
// Balance is the stored field, not TotalReceived minus TotalSent. The two are maintained
// independently and may disagree.
type UserStatistics struct {
	UserID                 uuid.UUID
	UserName               string
	Balance                decimal.Decimal
	TotalTransactions      int
	SuccessfulTransactions int
	PendingTransactions    int
	FailedTransactions     int
	TotalSent              decimal.Decimal // SEND_MONEY + WITHDRAW, every status
	TotalReceived          decimal.Decimal // FUND_WALLET, every status
}

// NewUserStatistics computes the statistics of a user's transactions in a single pass
func NewUserStatistics(user *User, transactions []*Transaction) *UserStatistics {
	stats := &UserStatistics{
		UserID:        user.ID,
		UserName:      user.Name,
		Balance:       user.Balance,
		TotalSent:     decimal.Zero,
		TotalReceived: decimal.Zero,
	}

	for _, tx := range transactions {
		stats.TotalTransactions++

		switch tx.Status {
		case StatusSuccessful:
			stats.SuccessfulTransactions++
		case StatusPending:
			stats.PendingTransactions++
		case StatusFailed:
			stats.FailedTransactions++
		}

		switch {
		case tx.IsOutgoing():
			stats.TotalSent = stats.TotalSent.Add(tx.Amount)
		case tx.IsIncoming():
			stats.TotalReceived = stats.TotalReceived.Add(tx.Amount)
		}
	}

	return stats
}

// ComputedNet returns TotalReceived minus TotalSent
func (s *UserStatistics) ComputedNet() decimal.Decimal {
	return s.TotalReceived.Sub(s.TotalSent)
}
