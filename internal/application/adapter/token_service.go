package adapter

import (
	"context"
	"time"
)

// Token scopes understood by the API.
const (
	ScopeLedgerWrite = "ledger:write"
	ScopeLedgerRead  = "ledger:read"
	ScopeWebhook     = "webhook:quoteforge"
)

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	Subject   string
	Scopes    []string
	ExpiresAt time.Time
}

// HasScope reports whether the claims grant the scope.
func (c *TokenClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// TokenService defines the interface for access token operations.
type TokenService interface {
	// IssueAccessToken signs a token for an operator or an integration.
	IssueAccessToken(ctx context.Context, subject string, scopes []string, ttl time.Duration) (string, error)

	// ValidateAccessToken validates a token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
