package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// CashAccountStore is an in-memory adapter.CashAccountRepository.
type CashAccountStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]entity.CashAccount
}

// NewCashAccountStore creates an empty CashAccountStore.
func NewCashAccountStore() *CashAccountStore {
	return &CashAccountStore{accounts: make(map[uuid.UUID]entity.CashAccount)}
}

func (s *CashAccountStore) Create(ctx context.Context, account *entity.CashAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = *account
	return nil
}

func (s *CashAccountStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.CashAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, domainerror.ErrCashAccountNotFound
	}
	return &a, nil
}

func (s *CashAccountStore) FindActive(ctx context.Context) ([]*entity.CashAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*entity.CashAccount, 0, len(s.accounts))
	for _, a := range s.accounts {
		if a.IsActive {
			acc := a
			result = append(result, &acc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// SnapshotStore is an in-memory adapter.SnapshotRepository.
type SnapshotStore struct {
	mu        sync.Mutex
	snapshots map[string]entity.MonthlyPLSnapshot
}

// NewSnapshotStore creates an empty SnapshotStore.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string]entity.MonthlyPLSnapshot)}
}

func (s *SnapshotStore) Create(ctx context.Context, snapshot *entity.MonthlyPLSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshot.MonthKey()
	if _, exists := s.snapshots[key]; exists {
		return domainerror.ErrMonthAlreadyClosed
	}
	s.snapshots[key] = *snapshot
	return nil
}

func (s *SnapshotStore) FindByMonth(ctx context.Context, month time.Time) (*entity.MonthlyPLSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[month.Format("2006-01")]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (s *SnapshotStore) List(ctx context.Context) ([]*entity.MonthlyPLSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*entity.MonthlyPLSnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		v := snap
		result = append(result, &v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month.After(result[j].Month) })
	return result, nil
}

// PayrollStore is an in-memory adapter.PayrollRepository seeded by the caller.
type PayrollStore struct {
	mu      sync.Mutex
	records []entity.PayrollRecord
}

// NewPayrollStore creates a PayrollStore holding records.
func NewPayrollStore(records ...entity.PayrollRecord) *PayrollStore {
	return &PayrollStore{records: records}
}

func (s *PayrollStore) FindByMonth(ctx context.Context, monthReference string) ([]*entity.PayrollRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*entity.PayrollRecord, 0)
	for _, r := range s.records {
		if r.MonthReference == monthReference {
			rec := r
			result = append(result, &rec)
		}
	}
	return result, nil
}

var (
	_ adapter.CashAccountRepository = (*CashAccountStore)(nil)
	_ adapter.SnapshotRepository    = (*SnapshotStore)(nil)
	_ adapter.PayrollRepository     = (*PayrollStore)(nil)
)
