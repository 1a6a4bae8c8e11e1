package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// CashAccountRepository defines persistence operations for cash accounts.
type CashAccountRepository interface {
	Create(ctx context.Context, account *entity.CashAccount) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CashAccount, error)
	FindActive(ctx context.Context) ([]*entity.CashAccount, error)
}
