package mcp

import (
	"github.com/amirhossein-jamali/finquery/internal/domain/presenter"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/config"
)

const jsonMimeType = "application/json"

// NewGuidelinesResource serves the financial health guidelines
func NewGuidelinesResource(reference config.ReferenceData) *Resource {
	return &Resource{
		URI:         "finance://guidelines",
		Name:        "financial_guidelines",
		Description: "Guidelines for analyzing user financial health and risk assessment",
		MimeType:    jsonMimeType,
		Read: func() (string, error) {
			return presenter.JSONText(reference.Guidelines)
		},
	}
}

// NewLimitsResource serves the transaction limits and business rules
func NewLimitsResource(reference config.ReferenceData) *Resource {
	return &Resource{
		URI:         "finance://limits",
		Name:        "transaction_limits",
		Description: "Transaction limits and business rules for different regions and currencies",
		MimeType:    jsonMimeType,
		Read: func() (string, error) {
			return presenter.JSONText(reference.Limits)
		},
	}
}
