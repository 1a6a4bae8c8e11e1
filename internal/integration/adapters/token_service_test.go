package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/application/adapter"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("test-secret")

	token, err := svc.IssueAccessToken(ctx, "ops@ledgerly", []string{adapter.ScopeLedgerRead, adapter.ScopeLedgerWrite}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "ops@ledgerly", claims.Subject)
	assert.True(t, claims.HasScope(adapter.ScopeLedgerWrite))
	assert.False(t, claims.HasScope(adapter.ScopeWebhook))
}

func TestTokenService_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("test-secret")

	expired, err := svc.IssueAccessToken(ctx, "ops", nil, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(ctx, expired)
	assert.True(t, errors.Is(err, domainerror.ErrExpiredToken), "got %v", err)

	foreign, err := NewTokenService("other-secret").IssueAccessToken(ctx, "ops", nil, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(ctx, foreign)
	assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))

	_, err = svc.ValidateAccessToken(ctx, "not-a-jwt")
	assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
}
