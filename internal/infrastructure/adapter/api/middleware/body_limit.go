package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/dto"
)

// BodyLimit rejects request bodies larger than maxBytes with 413 before the handler reads them
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			abortTooLarge(c)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortTooLarge(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrInvalidRequest),
				Message: errs.ErrInvalidRequest.Error(),
			})
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

func abortTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
		Code:    errs.ErrorCode(errs.ErrRequestTooLarge),
		Message: errs.ErrRequestTooLarge.Error(),
	})
}
