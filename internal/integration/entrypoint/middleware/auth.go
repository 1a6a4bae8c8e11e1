// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/application/adapter"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// SubjectKey is the context key for the authenticated token subject.
	SubjectKey ContextKey = "subject"
	// ScopesKey is the context key for the granted scopes.
	ScopesKey ContextKey = "scopes"
)

// AuthMiddleware provides bearer token authentication.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a handler that requires a valid token carrying every
// listed scope.
func (m *AuthMiddleware) Authenticate(scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}
		if token == "" {
			abort(c, http.StatusUnauthorized, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			if errors.Is(err, domainerror.ErrExpiredToken) {
				code = domainerror.ErrCodeExpiredToken
			}
			abort(c, http.StatusUnauthorized, "Invalid or expired token", code)
			return
		}

		for _, scope := range scopes {
			if !claims.HasScope(scope) {
				abort(c, http.StatusForbidden, "Token lacks scope "+scope, domainerror.ErrCodeInsufficientScope)
				return
			}
		}

		c.Set(string(SubjectKey), claims.Subject)
		c.Set(string(ScopesKey), claims.Scopes)

		c.Next()
	}
}

// GetSubjectFromContext extracts the token subject from the Gin context.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	subject, exists := c.Get(string(SubjectKey))
	if !exists {
		return "", false
	}
	s, ok := subject.(string)
	return s, ok
}

func abort(c *gin.Context, status int, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}
