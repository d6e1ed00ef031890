package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
)

// MaxDecimalPlaces defines the number of fractional digits carried by every amount
const MaxDecimalPlaces = 2

// ParseAmount parses a non-negative amount with at most two fractional digits
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return decimal.Zero, errs.NewValidationError("amount", amount, "must not be empty")
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, errs.NewValidationError("amount", amount, "must be a decimal number")
	}
	if value.IsNegative() {
		return decimal.Zero, errs.NewValidationError("amount", amount, "must not be negative")
	}
	if -value.Exponent() > MaxDecimalPlaces && !value.Equal(value.Round(MaxDecimalPlaces)) {
		return decimal.Zero, errs.NewValidationError("amount", amount,
			fmt.Sprintf("must have at most %d decimal places", MaxDecimalPlaces))
	}

	return value.Round(MaxDecimalPlaces), nil
}

// AmountToString renders an amount with exactly two fractional digits
// For example:
// - 1000 becomes "1000.00"
// - 250.5 becomes "250.50"
func AmountToString(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}

// FormatGroupedAmount renders an amount with two fractional digits and comma thousands separators
// Example: 1500.75 becomes "1,500.75", 1234567 becomes "1,234,567.00"
func FormatGroupedAmount(amount decimal.Decimal) string {
	fixed := AmountToString(amount)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	wholePart, decimalPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.Grow(len(wholePart) + len(wholePart)/3 + len(decimalPart) + 2)
	b.WriteString(sign)

	lead := len(wholePart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(wholePart[:lead])
	for i := lead; i < len(wholePart); i += 3 {
		b.WriteByte(',')
		b.WriteString(wholePart[i : i+3])
	}

	b.WriteByte('.')
	b.WriteString(decimalPart)
	return b.String()
}
