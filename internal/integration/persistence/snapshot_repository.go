package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/persistence/model"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new monthly snapshot repository instance.
func NewSnapshotRepository(db *gorm.DB) adapter.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Create writes a snapshot once per month.
func (r *snapshotRepository) Create(ctx context.Context, snapshot *entity.MonthlyPLSnapshot) error {
	snapshotModel := model.MonthlySnapshotModelFromEntity(snapshot)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.MonthlySnapshotModel{}).
			Where("month = ?", snapshotModel.Month).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerror.ErrMonthAlreadyClosed
		}
		if err := tx.Create(snapshotModel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainerror.ErrMonthAlreadyClosed
			}
			return err
		}
		return nil
	})
}

// FindByMonth returns nil without error when the month has not been closed.
func (r *snapshotRepository) FindByMonth(ctx context.Context, month time.Time) (*entity.MonthlyPLSnapshot, error) {
	var snapshotModel model.MonthlySnapshotModel
	result := r.db.WithContext(ctx).Where("month = ?", month.Format("2006-01")).First(&snapshotModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return snapshotModel.ToEntity(), nil
}

func (r *snapshotRepository) List(ctx context.Context) ([]*entity.MonthlyPLSnapshot, error) {
	var snapshotModels []model.MonthlySnapshotModel
	if err := r.db.WithContext(ctx).Order("month DESC").Find(&snapshotModels).Error; err != nil {
		return nil, err
	}

	snapshots := make([]*entity.MonthlyPLSnapshot, len(snapshotModels))
	for i := range snapshotModels {
		snapshots[i] = snapshotModels[i].ToEntity()
	}
	return snapshots, nil
}

type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a read-only payroll repository instance.
func NewPayrollRepository(db *gorm.DB) adapter.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) FindByMonth(ctx context.Context, monthReference string) ([]*entity.PayrollRecord, error) {
	var recordModels []model.PayrollRecordModel
	if err := r.db.WithContext(ctx).
		Where("month_reference = ?", monthReference).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*entity.PayrollRecord, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToEntity()
	}
	return records, nil
}
