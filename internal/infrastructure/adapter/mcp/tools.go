package mcp

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/internal/domain/presenter"
	"github.com/amirhossein-jamali/finquery/internal/domain/validation"
)

const userIDArg = "user_id"

// Arguments are the decoded tools/call arguments
type Arguments map[string]any

// OptionalString returns nil when name is absent or null and rejects non-string values
func (a Arguments) OptionalString(name string) (*string, error) {
	raw, ok := a[name]
	if !ok || raw == nil {
		return nil, nil
	}
	value, ok := raw.(string)
	if !ok {
		return nil, errs.NewValidationError(name, fmt.Sprint(raw), "must be a string")
	}
	return &value, nil
}

// userIDRules require a present, well-formed user id
var userIDRules = validation.Pipeline[string]{
	validation.Field(userIDArg, func(s string) string { return s }, validation.UUID),
}

// requireUserID extracts and validates the user_id argument
func requireUserID(args map[string]any) (string, error) {
	value, err := Arguments(args).OptionalString(userIDArg)
	if err != nil {
		return "", err
	}
	userID := ""
	if value != nil {
		userID = *value
	}
	if err := userIDRules.Validate(userID); err != nil {
		return "", err
	}
	return userID, nil
}

func userIDSchema() InputSchema {
	return InputSchema{
		Type: "object",
		Properties: map[string]SchemaProperty{
			userIDArg: {Type: "string", Format: "uuid", Description: "The UUID of the user"},
		},
		Required: []string{userIDArg},
	}
}

// NewBalanceTool answers get_user_balance with a balance sentence
func NewBalanceTool(users usecase.UserUseCase) *Tool {
	return &Tool{
		Name:        "get_user_balance",
		Title:       "Get User Balance",
		Description: "Get a user's stored balance.",
		InputSchema: userIDSchema(),
		Handle: func(ctx context.Context, args Arguments) (any, error) {
			userID, err := requireUserID(args)
			if err != nil {
				return nil, err
			}
			return users.GetUserBalance(ctx, userID)
		},
		Render: func(result any) (string, error) {
			return presenter.BalanceText(result.(*entity.UserBalance)), nil
		},
	}
}

// NewStatsTool answers get_user_stats with the statistics as indented JSON
func NewStatsTool(users usecase.UserUseCase) *Tool {
	return &Tool{
		Name:        "get_user_stats",
		Title:       "Get User Statistics",
		Description: "Calculate user transaction statistics",
		InputSchema: userIDSchema(),
		Handle: func(ctx context.Context, args Arguments) (any, error) {
			userID, err := requireUserID(args)
			if err != nil {
				return nil, err
			}
			return users.GetUserStatistics(ctx, userID)
		},
		Render: func(result any) (string, error) {
			return presenter.StatisticsText(result.(*entity.UserStatistics))
		},
	}
}

// NewSearchTool answers search_transactions with at most limit summaries
func NewSearchTool(transactions usecase.TransactionUseCase, limit int) *Tool {
	return &Tool{
		Name:        "search_transactions",
		Title:       "Search Transactions",
		Description: "Find transactions by type, status, or currency",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]SchemaProperty{
				"type":     {Type: "string", Enum: typeNames(), Description: "Transaction type (SEND_MONEY, FUND_WALLET, WITHDRAW)"},
				"status":   {Type: "string", Enum: statusNames(), Description: "Transaction status (PENDING, SUCCESSFUL, FAILED)"},
				"currency": {Type: "string", MinLength: entity.CurrencyCodeLength, MaxLength: entity.CurrencyCodeLength, Description: "Currency code (USD, EUR, CAD)"},
			},
		},
		Handle: func(ctx context.Context, args Arguments) (any, error) {
			query, err := transactionQuery(args)
			if err != nil {
				return nil, err
			}
			query.Limit = limit
			return transactions.FilterTransactions(ctx, query)
		},
		Render: func(result any) (string, error) {
			return presenter.TransactionsText(result.([]*entity.Transaction))
		},
	}
}

// transactionQuery reads type, status and currency in that order
func transactionQuery(args Arguments) (usecase.TransactionQuery, error) {
	var query usecase.TransactionQuery
	var err error

	if query.Type, err = args.OptionalString("type"); err != nil {
		return query, err
	}
	if query.Status, err = args.OptionalString("status"); err != nil {
		return query, err
	}
	if query.Currency, err = args.OptionalString("currency"); err != nil {
		return query, err
	}
	return query, nil
}
