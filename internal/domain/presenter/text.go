package presenter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
)

const jsonIndent = "    "

// FormatMoney renders an amount grouped by thousands with two fractional digits
func FormatMoney(amount decimal.Decimal) string {
	return entity.FormatGroupedAmount(amount)
}

// BalanceText renders the balance sentence, e.g. "User John Doe has a balance of $1,500.75"
func BalanceText(balance *entity.UserBalance) string {
	return fmt.Sprintf("User %s has a balance of $%s", balance.UserName, FormatMoney(balance.Balance))
}

// StatisticsText renders statistics as an indented JSON object
func StatisticsText(stats *entity.UserStatistics) (string, error) {
	return JSONText(NewStatisticsView(stats))
}

// TransactionsText renders transaction summaries as an indented JSON array; no matches render as []
func TransactionsText(transactions []*entity.Transaction) (string, error) {
	return JSONText(NewTransactionSummaryViews(transactions))
}

// JSONText renders v as JSON indented by four spaces, without HTML escaping or a trailing newline
func JSONText(v any) (string, error) {
	return encode(v, jsonIndent)
}

// CompactJSON renders v as single-line JSON without HTML escaping
func CompactJSON(v any) (string, error) {
	return encode(v, "")
}

func encode(v any, indent string) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent != "" {
		encoder.SetIndent("", indent)
	}
	if err := encoder.Encode(v); err != nil {
		return "", fmt.Errorf("failed to render json text: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
