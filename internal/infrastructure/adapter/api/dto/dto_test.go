package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

func TestTransactionResponseEmbedsUserWithoutPassword(t *testing.T) {
	user := &entity.User{
		ID:           uuid.New(),
		Name:         "John Doe",
		Email:        "john@example.com",
		Balance:      decimal.RequireFromString("1500.75"),
		PasswordHash: "$2a$10$secret",
	}
	tx := &entity.Transaction{
		ID:        uuid.New(),
		UserID:    user.ID,
		Type:      entity.TypeSendMoney,
		Amount:    decimal.RequireFromString("250.5"),
		Currency:  "USD",
		Status:    entity.StatusSuccessful,
		Reference: "TXN-ABCDEFGH",
		CreatedAt: time.Date(2025, 10, 15, 10, 44, 41, 0, time.UTC),
		User:      user,
	}

	body, err := json.Marshal(NewTransactionResponse(tx))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "250.50", decoded["amount"])
	assert.Nil(t, decoded["description"])
	embedded, ok := decoded["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "John Doe", embedded["name"])
	assert.Equal(t, "1500.75", embedded["balance"])
	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, embedded, "password")
}

func TestEmptyResponsesRenderAsArrays(t *testing.T) {
	body, err := json.Marshal(NewTransactionResponses(nil))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))

	body, err = json.Marshal(NewUserResponses(nil))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}
