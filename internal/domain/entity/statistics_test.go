package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTx(txType TransactionType, amount, currency string, status TransactionStatus) *Transaction {
	return &Transaction{
		ID:       uuid.New(),
		Type:     txType,
		Amount:   decimal.RequireFromString(amount),
		Currency: currency,
		Status:   status,
	}
}

func TestNewUserStatistics(t *testing.T) {
	user := &User{
		ID:      uuid.New(),
		Name:    "John Doe",
		Balance: decimal.RequireFromString("1500.75"),
	}

	t.Run("Demo ledger", func(t *testing.T) {
		transactions := []*Transaction{
			newTx(TypeFundWallet, "1000.00", "USD", StatusSuccessful),
			newTx(TypeSendMoney, "250.50", "USD", StatusSuccessful),
			newTx(TypeSendMoney, "100.00", "EUR", StatusPending),
			newTx(TypeWithdraw, "75.25", "USD", StatusFailed),
		}

		stats := NewUserStatistics(user, transactions)

		assert.Equal(t, user.ID, stats.UserID)
		assert.Equal(t, "John Doe", stats.UserName)
		assert.Equal(t, 4, stats.TotalTransactions)
		assert.Equal(t, 2, stats.SuccessfulTransactions)
		assert.Equal(t, 1, stats.PendingTransactions)
		assert.Equal(t, 1, stats.FailedTransactions)
		assert.Equal(t, "425.75", AmountToString(stats.TotalSent))
		assert.Equal(t, "1000.00", AmountToString(stats.TotalReceived))
		assert.Equal(t, "1500.75", AmountToString(stats.Balance))
	})

	t.Run("Empty ledger sums to zero", func(t *testing.T) {
		stats := NewUserStatistics(user, nil)

		assert.Equal(t, 0, stats.TotalTransactions)
		assert.Equal(t, 0, stats.SuccessfulTransactions)
		assert.Equal(t, 0, stats.PendingTransactions)
		assert.Equal(t, 0, stats.FailedTransactions)
		assert.Equal(t, "0.00", AmountToString(stats.TotalSent))
		assert.Equal(t, "0.00", AmountToString(stats.TotalReceived))
	})

	t.Run("Status counts always add up", func(t *testing.T) {
		transactions := make([]*Transaction, 0, 30)
		statuses := TransactionStatuses()
		types := TransactionTypes()
		for i := 0; i < 30; i++ {
			transactions = append(transactions, newTx(types[i%len(types)], "0.10", "USD", statuses[i%len(statuses)]))
		}

		stats := NewUserStatistics(user, transactions)

		assert.Equal(t, stats.TotalTransactions,
			stats.SuccessfulTransactions+stats.PendingTransactions+stats.FailedTransactions)
		// 20 outgoing and 10 incoming dimes, exact without float drift
		assert.Equal(t, "2.00", AmountToString(stats.TotalSent))
		assert.Equal(t, "1.00", AmountToString(stats.TotalReceived))
		assert.Equal(t, "-1.00", AmountToString(stats.ComputedNet()))
	})
}

func TestUserToBalance(t *testing.T) {
	user := &User{ID: uuid.New(), Name: "Bob Johnson", Balance: decimal.RequireFromString("875.50")}

	balance := user.ToBalance()

	assert.Equal(t, user.ID, balance.UserID)
	assert.Equal(t, "Bob Johnson", balance.UserName)
	assert.True(t, balance.Balance.Equal(decimal.RequireFromString("875.5")))
}
