// Package presenter renders query results as structured views or as plain text blocks.
package presenter

import (
	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// StatisticsView is the structured form of entity.UserStatistics; field order is the rendered key order
type StatisticsView struct {
	UserName               string `json:"user_name"`
	Balance                string `json:"balance"`
	TotalTransactions      int    `json:"total_transactions"`
	SuccessfulTransactions int    `json:"successful_transactions"`
	PendingTransactions    int    `json:"pending_transactions"`
	FailedTransactions     int    `json:"failed_transactions"`
	TotalSent              string `json:"total_sent"`
	TotalReceived          string `json:"total_received"`
}

// TransactionSummaryView is the compact transaction form returned by searches
type TransactionSummaryView struct {
	ID          string  `json:"id"`
	User        string  `json:"user"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	Description *string `json:"description"`
}

// BalanceView is the structured form of entity.UserBalance
type BalanceView struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Balance  string `json:"balance"`
}

// NewStatisticsView converts statistics into their structured view
func NewStatisticsView(stats *entity.UserStatistics) StatisticsView {
	return StatisticsView{
		UserName:               stats.UserName,
		Balance:                entity.AmountToString(stats.Balance),
		TotalTransactions:      stats.TotalTransactions,
		SuccessfulTransactions: stats.SuccessfulTransactions,
		PendingTransactions:    stats.PendingTransactions,
		FailedTransactions:     stats.FailedTransactions,
		TotalSent:              entity.AmountToString(stats.TotalSent),
		TotalReceived:          entity.AmountToString(stats.TotalReceived),
	}
}

// NewTransactionSummaryView converts a transaction into its summary view
func NewTransactionSummaryView(tx *entity.Transaction) TransactionSummaryView {
	return TransactionSummaryView{
		ID:          tx.ID.String(),
		User:        tx.UserName(),
		Type:        string(tx.Type),
		Amount:      entity.AmountToString(tx.Amount),
		Currency:    tx.Currency,
		Status:      string(tx.Status),
		Description: tx.Description,
	}
}

// NewTransactionSummaryViews converts transactions in order; the result is never nil
func NewTransactionSummaryViews(transactions []*entity.Transaction) []TransactionSummaryView {
	views := make([]TransactionSummaryView, 0, len(transactions))
	for _, tx := range transactions {
		views = append(views, NewTransactionSummaryView(tx))
	}
	return views
}

// NewBalanceView converts a balance into its structured view
func NewBalanceView(balance *entity.UserBalance) BalanceView {
	return BalanceView{
		UserID:   balance.UserID.String(),
		UserName: balance.UserName,
		Balance:  entity.AmountToString(balance.Balance),
	}
}
