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

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create inserts a new expense entry.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.ExpenseEntry) error {
	return r.db.WithContext(ctx).Create(model.ExpenseModelFromEntity(expense)).Error
}

// FindByID retrieves an expense entry by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseEntry, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByFilter retrieves entries matching the filter, ordered by incurred date ascending.
func (r *expenseRepository) FindByFilter(ctx context.Context, filter adapter.ExpenseFilter) ([]*entity.ExpenseEntry, error) {
	query := r.db.WithContext(ctx).Model(&model.ExpenseModel{})

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.IncurredFrom != nil {
		query = query.Where("incurred_date >= ?", *filter.IncurredFrom)
	}
	if filter.IncurredTo != nil {
		query = query.Where("incurred_date <= ?", *filter.IncurredTo)
	}
	if filter.PaidFrom != nil {
		query = query.Where("paid_date >= ?", *filter.PaidFrom)
	}
	if filter.PaidTo != nil {
		query = query.Where("paid_date <= ?", *filter.PaidTo)
	}

	var expenseModels []model.ExpenseModel
	if err := query.Order("incurred_date ASC, created_at ASC").Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.ExpenseEntry, len(expenseModels))
	for i := range expenseModels {
		entries[i] = expenseModels[i].ToEntity()
	}
	return entries, nil
}

// Update overwrites an existing expense entry.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.ExpenseEntry) error {
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{ID: expense.ID}).
		Select("*").
		Updates(model.ExpenseModelFromEntity(expense))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}
