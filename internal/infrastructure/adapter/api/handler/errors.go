package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/dto"
)

// StatusCode maps a domain error onto its HTTP status
func StatusCode(err error) int {
	switch {
	case errs.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	case errs.IsStoreError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body; store and internal failures never expose driver text
func respondError(c *gin.Context, logger coreport.Logger, message string, err error) {
	status := StatusCode(err)

	clientMessage := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		clientMessage = errs.ErrStore.Error()
	case http.StatusInternalServerError:
		clientMessage = errs.ErrInternalServer.Error()
	}

	fields := errs.LogFields(err)
	fields["path"] = c.Request.URL.Path
	fields["status"] = status
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields)
	} else {
		logger.Debug(message, fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: clientMessage,
	})
}
