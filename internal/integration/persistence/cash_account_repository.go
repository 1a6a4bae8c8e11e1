package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/persistence/model"
)

type cashAccountRepository struct {
	db *gorm.DB
}

// NewCashAccountRepository creates a new cash account repository instance.
func NewCashAccountRepository(db *gorm.DB) adapter.CashAccountRepository {
	return &cashAccountRepository{db: db}
}

func (r *cashAccountRepository) Create(ctx context.Context, account *entity.CashAccount) error {
	return r.db.WithContext(ctx).Create(model.CashAccountModelFromEntity(account)).Error
}

func (r *cashAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CashAccount, error) {
	var accountModel model.CashAccountModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCashAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindActive returns the active accounts ordered by name.
func (r *cashAccountRepository) FindActive(ctx context.Context) ([]*entity.CashAccount, error) {
	var accountModels []model.CashAccountModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]*entity.CashAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}
	return accounts, nil
}
