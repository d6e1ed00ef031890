package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
)

func TestErrorClassifier(t *testing.T) {
	classifier := NewErrorClassifier()

	testCases := []struct {
		name     string
		err      error
		expected errs.StoreErrorKind
	}{
		{"nil", nil, ""},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), errs.StoreKindTimeout},
		{"statement timeout", errors.New("ERROR: canceling statement due to statement timeout"), errs.StoreKindTimeout},
		{"refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), errs.StoreKindConnection},
		{"closed", errors.New("sql: database is closed"), errs.StoreKindConnection},
		{"syntax", errors.New(`ERROR: column "bogus" does not exist`), errs.StoreKindQuery},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.Classify(tc.err))
		})
	}
}

func TestErrorClassifierWrap(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := NewErrorClassifier().Wrap("transactions.find", cause)

	assert.True(t, errs.IsStoreError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, errs.CodeStore, errs.ErrorCode(err))

	var storeErr *errs.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, errs.StoreKindConnection, storeErr.Kind)
	assert.Equal(t, "transactions.find", storeErr.Operation)
}
