package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/internal/domain/presenter"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/dto"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userUseCase usecase.UserUseCase,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUseCase.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Error listing users", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUseCase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Error getting user", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ListUserTransactions handles GET /users/:id/transactions
func (h *UserHandler) ListUserTransactions(c *gin.Context) {
	transactions, err := h.userUseCase.ListUserTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Error listing user transactions", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponses(transactions))
}

// GetBalance handles GET /users/:id/balance
func (h *UserHandler) GetBalance(c *gin.Context) {
	balance, err := h.userUseCase.GetUserBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Error getting user balance", err)
		return
	}

	c.JSON(http.StatusOK, presenter.NewBalanceView(balance))
}

// GetStatistics handles GET /users/:id/stats
func (h *UserHandler) GetStatistics(c *gin.Context) {
	stats, err := h.userUseCase.GetUserStatistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Error getting user statistics", err)
		return
	}

	c.JSON(http.StatusOK, presenter.NewStatisticsView(stats))
}
