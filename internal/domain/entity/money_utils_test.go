package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"100.00", "100.00"},
			{"0.01", "0.01"},
			{"1", "1.00"},
			{"1.5", "1.50"},
			{"1234567.89", "1234567.89"},
			{"1.230", "1.23"},
			{" 75.25 ", "75.25"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				amount, err := ParseAmount(tc.input)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, AmountToString(amount))
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"", "Empty string"},
			{"   ", "Whitespace only"},
			{"-1.00", "Negative amount"},
			{"1.234", "Too many decimal places"},
			{"abc", "Non-numeric"},
			{"1,000.00", "Comma as thousands separator"},
			{"$100", "Currency symbol"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValidation)
			})
		}
	})
}

func TestAmountToString(t *testing.T) {
	testCases := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.Zero, "0.00"},
		{decimal.RequireFromString("1000"), "1000.00"},
		{decimal.RequireFromString("250.5"), "250.50"},
		{decimal.RequireFromString("0.1").Add(decimal.RequireFromString("0.2")), "0.30"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, AmountToString(tc.amount))
		})
	}
}

func TestFormatGroupedAmount(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"0", "0.00"},
		{"1.5", "1.50"},
		{"999.99", "999.99"},
		{"1000", "1,000.00"},
		{"1500.75", "1,500.75"},
		{"2250", "2,250.00"},
		{"12345.6", "12,345.60"},
		{"123456.78", "123,456.78"},
		{"1234567.89", "1,234,567.89"},
		{"-1500.75", "-1,500.75"},
		{"0.005", "0.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatGroupedAmount(decimal.RequireFromString(tc.input)))
		})
	}
}
