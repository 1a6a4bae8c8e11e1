// Package persistence implements repository interfaces for database operations.
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

// incomeRepository implements the adapter.IncomeRepository interface.
type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository instance.
func NewIncomeRepository(db *gorm.DB) adapter.IncomeRepository {
	return &incomeRepository{
		db: db,
	}
}

// Create inserts a new income entry. A source reference can only be ingested once.
func (r *incomeRepository) Create(ctx context.Context, income *entity.IncomeEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if income.SourceRefID != nil {
			var count int64
			if err := tx.Model(&model.IncomeModel{}).
				Where("source_ref_id = ?", *income.SourceRefID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return domainerror.ErrDuplicateSourceRef
			}
		}
		return tx.Create(model.IncomeModelFromEntity(income)).Error
	})
}

// FindByID retrieves an income entry by its ID.
func (r *incomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error) {
	var incomeModel model.IncomeModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&incomeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrIncomeNotFound
		}
		return nil, result.Error
	}
	return incomeModel.ToEntity(), nil
}

// FindBySourceRef retrieves the entry ingested from an external reference.
func (r *incomeRepository) FindBySourceRef(ctx context.Context, sourceRefID string) (*entity.IncomeEntry, error) {
	var incomeModel model.IncomeModel
	result := r.db.WithContext(ctx).Where("source_ref_id = ?", sourceRefID).First(&incomeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrIncomeNotFound
		}
		return nil, result.Error
	}
	return incomeModel.ToEntity(), nil
}

// FindByFilter retrieves entries matching the filter, ordered by date ascending.
func (r *incomeRepository) FindByFilter(ctx context.Context, filter adapter.IncomeFilter) ([]*entity.IncomeEntry, error) {
	query := r.db.WithContext(ctx).Model(&model.IncomeModel{})

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", incomeStatusStrings(filter.Statuses))
	}
	if len(filter.ExcludeStatuses) > 0 {
		query = query.Where("status NOT IN ?", incomeStatusStrings(filter.ExcludeStatuses))
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.ReceivedFrom != nil {
		query = query.Where("received_date >= ?", *filter.ReceivedFrom)
	}
	if filter.ReceivedTo != nil {
		query = query.Where("received_date <= ?", *filter.ReceivedTo)
	}
	if filter.OnHold != nil {
		query = query.Where("is_on_hold = ?", *filter.OnHold)
	}
	if filter.RetainerInstanceID != nil {
		query = query.Where("retainer_instance_id = ?", *filter.RetainerInstanceID)
	}
	if filter.SourceRefID != nil {
		query = query.Where("source_ref_id = ?", *filter.SourceRefID)
	}

	var incomeModels []model.IncomeModel
	if err := query.Order("date ASC, created_at ASC").Find(&incomeModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.IncomeEntry, len(incomeModels))
	for i := range incomeModels {
		entries[i] = incomeModels[i].ToEntity()
	}
	return entries, nil
}

// Update overwrites an existing income entry. An archived row only accepts
// writes that keep it archived, so a transition computed from a stale read
// cannot reopen a settled original.
func (r *incomeRepository) Update(ctx context.Context, income *entity.IncomeEntry) error {
	query := r.db.WithContext(ctx).Model(&model.IncomeModel{ID: income.ID})
	if income.Status != entity.IncomeStatusArchived {
		query = query.Where("status <> ?", string(entity.IncomeStatusArchived))
	}
	result := query.Select("*").Updates(model.IncomeModelFromEntity(income))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.IncomeModel{}).Where("id = ?", income.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerror.ErrIncomeNotFound
		}
		return domainerror.ErrAlreadySettled
	}
	return nil
}

// ApplySettlement archives the original and inserts the realized record in one
// transaction. The archive is conditional on the stored original still being
// open, so a concurrent settlement that got there first leaves zero rows affected.
func (r *incomeRepository) ApplySettlement(ctx context.Context, original *entity.IncomeEntry, realized *entity.IncomeEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.IncomeModel{ID: original.ID}).
			Where("status <> ?", string(entity.IncomeStatusArchived)).
			Where("superseded_by_id IS NULL").
			Select("*").
			Updates(model.IncomeModelFromEntity(original))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.IncomeModel{}).Where("id = ?", original.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerror.ErrIncomeNotFound
			}
			return domainerror.ErrAlreadySettled
		}

		var existing int64
		if err := tx.Model(&model.IncomeModel{}).Where("supersedes_id = ?", original.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domainerror.ErrAlreadySettled
		}

		if err := tx.Create(model.IncomeModelFromEntity(realized)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainerror.ErrAlreadySettled
			}
			return err
		}
		return nil
	})
}

func incomeStatusStrings(statuses []entity.IncomeStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
