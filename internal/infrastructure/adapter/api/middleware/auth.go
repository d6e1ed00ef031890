package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/dto"
)

// SubjectKey is the gin context key holding the authenticated user id
const SubjectKey = "subject"

// JWTAuth accepts an HS256 bearer token whose subject is a user UUID.
// Tokens are issued elsewhere; an empty issuer skips the issuer check.
func JWTAuth(secret, issuer string, logger coreport.Logger) gin.HandlerFunc {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(options...)
	key := []byte(secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			unauthorized(c, logger, "missing bearer token")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(parts[1], claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			reason := "invalid token"
			if err != nil {
				reason = err.Error()
			}
			unauthorized(c, logger, reason)
			return
		}

		subject, err := uuid.Parse(claims.Subject)
		if err != nil {
			unauthorized(c, logger, "subject is not a user id")
			return
		}

		c.Set(SubjectKey, subject.String())
		c.Next()
	}
}

func unauthorized(c *gin.Context, logger coreport.Logger, reason string) {
	logger.Warn("Rejected unauthenticated request", map[string]any{
		"path":       c.Request.URL.Path,
		"reason":     reason,
		"request_id": c.GetString(RequestIDKey),
	})
	c.Header("WWW-Authenticate", `Bearer realm="finquery"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    errs.ErrorCode(errs.ErrUnauthorized),
		Message: errs.ErrUnauthorized.Error(),
	})
}
