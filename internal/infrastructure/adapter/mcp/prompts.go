package mcp

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/internal/domain/presenter"
	"github.com/amirhossein-jamali/finquery/internal/domain/validation"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

var userIDArgument = mcpgo.PromptArgument{
	Name:        userIDArg,
	Description: "UUID of the user to analyze",
	Required:    true,
}

// existingUserID validates user_id and checks the user exists
func existingUserID(ctx context.Context, users usecase.UserUseCase, args map[string]string) (string, error) {
	userID := args[userIDArg]
	if err := userIDRules.Validate(userID); err != nil {
		return "", err
	}

	exists, err := users.UserExists(ctx, userID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errs.NewValidationError(userIDArg, userID, "does not reference an existing user")
	}
	return userID, nil
}

// NewAnalyzeUserPrompt asks for a full financial report on one user
func NewAnalyzeUserPrompt(users usecase.UserUseCase) *Prompt {
	return &Prompt{
		Name:        "analyze_user_financials",
		Description: "Comprehensive financial analysis of a user",
		Arguments:   []mcpgo.PromptArgument{userIDArgument},
		Render: func(ctx context.Context, args map[string]string) ([]mcpgo.PromptMessage, error) {
			userID, err := existingUserID(ctx, users, args)
			if err != nil {
				return nil, err
			}

			return []mcpgo.PromptMessage{
				assistantMessage(fmt.Sprintf("You are a financial analyst. Perform comprehensive analysis of user %s's financial activity using available MCP tools.", userID)),
				userMessage(fmt.Sprintf("Analyze user %s's financial data. Use get_user_balance, get_user_stats, and search_transactions tools to gather data, then provide a structured report with executive summary, key metrics, risk analysis, and recommendations.", userID)),
			}, nil
		},
	}
}

// NewUserStatisticsPrompt asks for an interpretation of one user's statistics
func NewUserStatisticsPrompt(users usecase.UserUseCase) *Prompt {
	return &Prompt{
		Name:        "user_statistics",
		Description: "Get and interpret user transaction statistics",
		Arguments:   []mcpgo.PromptArgument{userIDArgument},
		Render: func(ctx context.Context, args map[string]string) ([]mcpgo.PromptMessage, error) {
			userID, err := existingUserID(ctx, users, args)
			if err != nil {
				return nil, err
			}

			return []mcpgo.PromptMessage{
				assistantMessage("You are a data analyst specializing in user behavior analysis. Interpret user statistics and provide meaningful insights."),
				userMessage(fmt.Sprintf("Get statistics for user %s using the get_user_stats tool. Analyze the data and provide insights about their transaction behavior, success rates, spending patterns, and overall financial activity. Highlight any concerning trends or positive patterns.", userID)),
			}, nil
		},
	}
}

// searchCriteria keeps the supplied criteria in type, status, currency order
type searchCriteria struct {
	Type     string `json:"type,omitempty"`
	Status   string `json:"status,omitempty"`
	Currency string `json:"currency,omitempty"`
}

var searchPromptRules = validation.Pipeline[searchCriteria]{
	validation.OptionalField("type", func(c searchCriteria) *string { return nonEmpty(c.Type) },
		validation.OneOf(typeNames()...)),
	validation.OptionalField("status", func(c searchCriteria) *string { return nonEmpty(c.Status) },
		validation.OneOf(statusNames()...)),
	validation.OptionalField("currency", func(c searchCriteria) *string { return nonEmpty(c.Currency) },
		validation.ExactRuneLength(entity.CurrencyCodeLength)),
}

// NewSearchTransactionsPrompt asks for a pattern analysis of a transaction search
func NewSearchTransactionsPrompt() *Prompt {
	return &Prompt{
		Name:        "search_transactions",
		Description: "Search for transactions by criteria and provide insights",
		Arguments: []mcpgo.PromptArgument{
			{Name: "type", Description: "Transaction type (SEND_MONEY, FUND_WALLET, WITHDRAW)"},
			{Name: "status", Description: "Transaction status (PENDING, SUCCESSFUL, FAILED)"},
			{Name: "currency", Description: "Currency code (USD, EUR, CAD)"},
		},
		Render: func(_ context.Context, args map[string]string) ([]mcpgo.PromptMessage, error) {
			criteria := searchCriteria{Type: args["type"], Status: args["status"], Currency: args["currency"]}
			if err := searchPromptRules.Validate(criteria); err != nil {
				return nil, err
			}

			criteriaText := "all transactions"
			if criteria != (searchCriteria{}) {
				encoded, err := presenter.CompactJSON(criteria)
				if err != nil {
					return nil, err
				}
				criteriaText = "transactions matching: " + encoded
			}

			return []mcpgo.PromptMessage{
				assistantMessage("You are a transaction analyst. Search and analyze transaction patterns based on the given criteria."),
				userMessage(fmt.Sprintf("Search for %s using the search_transactions tool. Analyze the results and provide insights about patterns, trends, and any notable findings in the transaction data.", criteriaText)),
			}, nil
		},
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func typeNames() []string {
	names := make([]string, 0, 3)
	for _, t := range entity.TransactionTypes() {
		names = append(names, string(t))
	}
	return names
}

func statusNames() []string {
	names := make([]string, 0, 3)
	for _, s := range entity.TransactionStatuses() {
		names = append(names, string(s))
	}
	return names
}

func assistantMessage(text string) mcpgo.PromptMessage {
	return mcpgo.NewPromptMessage(mcpgo.RoleAssistant, mcpgo.NewTextContent(text))
}

func userMessage(text string) mcpgo.PromptMessage {
	return mcpgo.NewPromptMessage(mcpgo.RoleUser, mcpgo.NewTextContent(text))
}
