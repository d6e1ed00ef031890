package transaction

import (
	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/internal/domain/validation"
)

// queryRules validates a raw transaction query in field order: type, status, currency, limit
func queryRules() validation.Pipeline[usecase.TransactionQuery] {
	types := make([]string, 0, len(entity.TransactionTypes()))
	for _, t := range entity.TransactionTypes() {
		types = append(types, string(t))
	}
	statuses := make([]string, 0, len(entity.TransactionStatuses()))
	for _, s := range entity.TransactionStatuses() {
		statuses = append(statuses, string(s))
	}

	return validation.Pipeline[usecase.TransactionQuery]{
		validation.OptionalField("type",
			func(q usecase.TransactionQuery) *string { return q.Type },
			validation.OneOf(types...)),
		validation.OptionalField("status",
			func(q usecase.TransactionQuery) *string { return q.Status },
			validation.OneOf(statuses...)),
		validation.OptionalField("currency",
			func(q usecase.TransactionQuery) *string { return q.Currency },
			validation.ExactRuneLength(entity.CurrencyCodeLength)),
		validation.NonNegative("limit",
			func(q usecase.TransactionQuery) int { return q.Limit }),
	}
}

// toFilter converts a validated query into a store filter
func toFilter(query usecase.TransactionQuery) entity.TransactionFilter {
	filter := entity.TransactionFilter{
		Currency: query.Currency,
		Limit:    query.Limit,
	}
	if query.Type != nil {
		txType := entity.TransactionType(*query.Type)
		filter.Type = &txType
	}
	if query.Status != nil {
		status := entity.TransactionStatus(*query.Status)
		filter.Status = &status
	}
	return filter
}
