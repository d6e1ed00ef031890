package dto

import (
	"time"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// TransactionResponse represents a ledger entry with its owner embedded when loaded
type TransactionResponse struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	Type           string        `json:"type"`
	Amount         string        `json:"amount"`
	Currency       string        `json:"currency"`
	Status         string        `json:"status"`
	Reference      string        `json:"reference"`
	Description    *string       `json:"description"`
	RecipientName  *string       `json:"recipient_name"`
	RecipientEmail *string       `json:"recipient_email"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	User           *UserResponse `json:"user,omitempty"`
}

// NewTransactionResponse converts a domain transaction
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:             tx.ID.String(),
		UserID:         tx.UserID.String(),
		Type:           string(tx.Type),
		Amount:         entity.AmountToString(tx.Amount),
		Currency:       tx.Currency,
		Status:         string(tx.Status),
		Reference:      tx.Reference,
		Description:    tx.Description,
		RecipientName:  tx.RecipientName,
		RecipientEmail: tx.RecipientEmail,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
	if tx.User != nil {
		user := NewUserResponse(tx.User)
		response.User = &user
	}
	return response
}

// NewTransactionResponses converts transactions in order; the result is never nil
func NewTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, NewTransactionResponse(tx))
	}
	return responses
}
