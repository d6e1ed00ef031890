package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionUseCase usecase.TransactionUseCase
	logger             coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	transactionUseCase usecase.TransactionUseCase,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
		logger:             logger,
	}
}

// ListTransactions handles GET /transactions?type=&status=&currency=
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	query := usecase.TransactionQuery{
		Type:     queryParam(c, "type"),
		Status:   queryParam(c, "status"),
		Currency: queryParam(c, "currency"),
	}

	transactions, err := h.transactionUseCase.FilterTransactions(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, "Error listing transactions", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponses(transactions))
}

// GetTransaction handles GET /transactions/:id
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transaction, err := h.transactionUseCase.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Error getting transaction", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// queryParam returns nil when the parameter is absent or empty
func queryParam(c *gin.Context, name string) *string {
	value, ok := c.GetQuery(name)
	if !ok || value == "" {
		return nil
	}
	return &value
}
