package cashflow

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// MaxForecastHorizonDays bounds the requested horizon.
const MaxForecastHorizonDays = 366

// GetForecastOutput represents the output of a daily forecast.
type GetForecastOutput struct {
	StartingCash decimal.Decimal
	Points       []valueobject.ForecastPoint
}

// GetForecastUseCase projects the cash balance day by day.
type GetForecastUseCase struct {
	reader         *LedgerReader
	clock          adapter.Clock
	defaultHorizon int
}

// NewGetForecastUseCase creates a new GetForecastUseCase instance.
func NewGetForecastUseCase(reader *LedgerReader, clock adapter.Clock, defaultHorizon int) *GetForecastUseCase {
	return &GetForecastUseCase{
		reader:         reader,
		clock:          clock,
		defaultHorizon: defaultHorizon,
	}
}

// Execute projects horizonDays days forward. Zero selects the configured default.
func (uc *GetForecastUseCase) Execute(ctx context.Context, horizonDays int) (*GetForecastOutput, error) {
	if horizonDays == 0 {
		horizonDays = uc.defaultHorizon
	}
	if horizonDays < 1 || horizonDays > MaxForecastHorizonDays {
		return nil, domainerror.NewCashflowError(
			domainerror.ErrCodeInvalidHorizon,
			fmt.Sprintf("horizon must be between 1 and %d days", MaxForecastHorizonDays),
			domainerror.ErrInvalidHorizon,
		)
	}

	set, err := uc.reader.load(ctx)
	if err != nil {
		return nil, err
	}

	liquid := CalculateLiquidCash(entity.TotalOpeningBalance(set.accounts), set.income, set.expenses)
	return &GetForecastOutput{
		StartingCash: liquid,
		Points:       ProjectDaily(liquid, set.income, set.expenses, uc.clock.Now(), horizonDays),
	}, nil
}
