// Package validation evaluates ordered input rules and stops at the first violation.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
)

// Predicate checks a single string value and returns a *ValidationError naming field when it fails
type Predicate func(field, value string) error

// Rule validates one aspect of an input of type T
type Rule[T any] struct {
	Field string
	Check func(T) error
}

// Pipeline is an ordered list of rules
type Pipeline[T any] []Rule[T]

// Validate runs the rules in order and returns the first failure
func (p Pipeline[T]) Validate(input T) error {
	for _, rule := range p {
		if err := rule.Check(input); err != nil {
			return err
		}
	}
	return nil
}

// Field builds a rule for a required string value
func Field[T any](name string, get func(T) string, predicates ...Predicate) Rule[T] {
	return Rule[T]{
		Field: name,
		Check: func(input T) error {
			value := get(input)
			if err := Present(name, value); err != nil {
				return err
			}
			return apply(name, value, predicates)
		},
	}
}

// OptionalField builds a rule for a value that imposes no constraint when absent
func OptionalField[T any](name string, get func(T) *string, predicates ...Predicate) Rule[T] {
	return Rule[T]{
		Field: name,
		Check: func(input T) error {
			value := get(input)
			if value == nil {
				return nil
			}
			return apply(name, *value, predicates)
		},
	}
}

// NonNegative builds a rule rejecting negative integers
func NonNegative[T any](name string, get func(T) int) Rule[T] {
	return Rule[T]{
		Field: name,
		Check: func(input T) error {
			if value := get(input); value < 0 {
				return errs.NewValidationError(name, fmt.Sprint(value), "must not be negative")
			}
			return nil
		},
	}
}

func apply(field, value string, predicates []Predicate) error {
	for _, predicate := range predicates {
		if err := predicate(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Present rejects empty values
func Present(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValidationError(field, value, "is required")
	}
	return nil
}

// UUID accepts canonical textual UUIDs
func UUID(field, value string) error {
	if _, err := ParseUUID(field, value); err != nil {
		return err
	}
	return nil
}

// ParseUUID parses value as a UUID, reporting a *ValidationError for field on failure
func ParseUUID(field, value string) (uuid.UUID, error) {
	// uuid.Parse also accepts urn and braced forms; only the 36 character form is an identifier here
	if len(value) != 36 {
		return uuid.Nil, errs.NewValidationError(field, value, "must be a valid UUID")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errs.NewValidationError(field, value, "must be a valid UUID")
	}
	return id, nil
}

// OneOf accepts only the listed values, compared case-sensitively
func OneOf(allowed ...string) Predicate {
	return func(field, value string) error {
		for _, candidate := range allowed {
			if candidate == value {
				return nil
			}
		}
		return errs.NewValidationError(field, value,
			fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	}
}

// ExactRuneLength accepts values of exactly n characters
func ExactRuneLength(n int) Predicate {
	return func(field, value string) error {
		if utf8.RuneCountInString(value) != n {
			return errs.NewValidationError(field, value, fmt.Sprintf("must be exactly %d characters", n))
		}
		return nil
	}
}
