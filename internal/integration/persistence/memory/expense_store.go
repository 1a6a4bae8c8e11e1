package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// ExpenseStore is an in-memory adapter.ExpenseRepository.
type ExpenseStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.ExpenseEntry
}

// NewExpenseStore creates an empty ExpenseStore.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{
		entries: make(map[uuid.UUID]*entity.ExpenseEntry),
	}
}

// Create inserts a new expense entry.
func (s *ExpenseStore) Create(ctx context.Context, expense *entity.ExpenseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[expense.ID] = expense.Clone()
	return nil
}

// FindByID retrieves an expense entry by its ID.
func (s *ExpenseStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	return e.Clone(), nil
}

// FindByFilter retrieves entries matching the filter, ordered by incurred date ascending.
func (s *ExpenseStore) FindByFilter(ctx context.Context, filter adapter.ExpenseFilter) ([]*entity.ExpenseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*entity.ExpenseEntry, 0)
	for _, e := range s.entries {
		if matchesExpense(e, filter) {
			result = append(result, e.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].IncurredDate.Before(result[j].IncurredDate)
	})
	return result, nil
}

// Update overwrites an existing expense entry.
func (s *ExpenseStore) Update(ctx context.Context, expense *entity.ExpenseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[expense.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	s.entries[expense.ID] = expense.Clone()
	return nil
}

func matchesExpense(e *entity.ExpenseEntry, f adapter.ExpenseFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if s == e.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.IncurredFrom != nil && e.IncurredDate.Before(*f.IncurredFrom) {
		return false
	}
	if f.IncurredTo != nil && e.IncurredDate.After(*f.IncurredTo) {
		return false
	}
	if f.PaidFrom != nil && (e.PaidDate == nil || e.PaidDate.Before(*f.PaidFrom)) {
		return false
	}
	if f.PaidTo != nil && (e.PaidDate == nil || e.PaidDate.After(*f.PaidTo)) {
		return false
	}
	return true
}

var _ adapter.ExpenseRepository = (*ExpenseStore)(nil)
