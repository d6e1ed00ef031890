package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionEnums(t *testing.T) {
	t.Run("All valid types", func(t *testing.T) {
		for _, txType := range []string{"SEND_MONEY", "FUND_WALLET", "WITHDRAW"} {
			assert.True(t, IsValidTransactionType(txType), txType)
		}
	})

	t.Run("Invalid types", func(t *testing.T) {
		for _, txType := range []string{"", "BOGUS", "send_money", "DEPOSIT"} {
			assert.False(t, IsValidTransactionType(txType), txType)
		}
	})

	t.Run("All valid statuses", func(t *testing.T) {
		for _, status := range []string{"PENDING", "SUCCESSFUL", "FAILED"} {
			assert.True(t, IsValidTransactionStatus(status), status)
		}
	})

	t.Run("Invalid statuses", func(t *testing.T) {
		for _, status := range []string{"", "successful", "COMPLETED"} {
			assert.False(t, IsValidTransactionStatus(status), status)
		}
	})
}

func TestTransactionDirection(t *testing.T) {
	testCases := []struct {
		txType   TransactionType
		outgoing bool
		incoming bool
	}{
		{TypeSendMoney, true, false},
		{TypeWithdraw, true, false},
		{TypeFundWallet, false, true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.txType), func(t *testing.T) {
			tx := &Transaction{Type: tc.txType}
			assert.Equal(t, tc.outgoing, tx.IsOutgoing())
			assert.Equal(t, tc.incoming, tx.IsIncoming())
		})
	}
}

func TestTransactionUserName(t *testing.T) {
	tx := &Transaction{}
	assert.Equal(t, "", tx.UserName())

	tx.User = &User{Name: "Jane Smith"}
	assert.Equal(t, "Jane Smith", tx.UserName())
}
