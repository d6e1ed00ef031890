package model

import (
	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

// ToEntity converts the database model to a domain user
func (u *User) ToEntity() *entity.User {
	return &entity.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Country:      u.Country,
		Phone:        u.Phone,
		Balance:      u.Balance,
		PasswordHash: u.Password,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ToEntity converts the database model to a domain transaction, including the owner when loaded
func (t *Transaction) ToEntity() *entity.Transaction {
	tx := &entity.Transaction{
		ID:             t.ID,
		UserID:         t.UserID,
		Type:           entity.TransactionType(t.Type),
		Amount:         t.Amount,
		Currency:       t.Currency,
		Status:         entity.TransactionStatus(t.Status),
		Reference:      t.Reference,
		Description:    t.Description,
		RecipientName:  t.RecipientName,
		RecipientEmail: t.RecipientEmail,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.User != nil {
		tx.User = t.User.ToEntity()
	}
	return tx
}

// TransactionsToEntities converts a slice of models preserving order
func TransactionsToEntities(models []Transaction) []*entity.Transaction {
	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, models[i].ToEntity())
	}
	return transactions
}
