// Package memory provides in-process implementations of the ledger repositories.
// They back the service when no database is configured and serve as fakes in tests.
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

// IncomeStore is an in-memory adapter.IncomeRepository. It is safe for concurrent use.
type IncomeStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.IncomeEntry
}

// NewIncomeStore creates an empty IncomeStore.
func NewIncomeStore() *IncomeStore {
	return &IncomeStore{
		entries: make(map[uuid.UUID]*entity.IncomeEntry),
	}
}

// Create inserts a new income entry.
func (s *IncomeStore) Create(ctx context.Context, income *entity.IncomeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[income.ID] = income.Clone()
	return nil
}

// FindByID retrieves an income entry by its ID.
func (s *IncomeStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, domainerror.ErrIncomeNotFound
	}
	return e.Clone(), nil
}

// FindBySourceRef retrieves the entry ingested from an external reference.
func (s *IncomeStore) FindBySourceRef(ctx context.Context, sourceRefID string) (*entity.IncomeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.SourceRefID != nil && *e.SourceRefID == sourceRefID {
			return e.Clone(), nil
		}
	}
	return nil, domainerror.ErrIncomeNotFound
}

// FindByFilter retrieves entries matching the filter, ordered by date ascending.
func (s *IncomeStore) FindByFilter(ctx context.Context, filter adapter.IncomeFilter) ([]*entity.IncomeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*entity.IncomeEntry, 0)
	for _, e := range s.entries {
		if matchesIncome(e, filter) {
			result = append(result, e.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// Update overwrites an existing income entry.
func (s *IncomeStore) Update(ctx context.Context, income *entity.IncomeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.entries[income.ID]
	if !ok {
		return domainerror.ErrIncomeNotFound
	}
	if current.Status == entity.IncomeStatusArchived && income.Status != entity.IncomeStatusArchived {
		return domainerror.ErrAlreadySettled
	}
	s.entries[income.ID] = income.Clone()
	return nil
}

// ApplySettlement inserts the realized record and archives the original atomically.
func (s *IncomeStore) ApplySettlement(ctx context.Context, original *entity.IncomeEntry, realized *entity.IncomeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.entries[original.ID]
	if !ok {
		return domainerror.ErrIncomeNotFound
	}
	if current.Status == entity.IncomeStatusArchived || current.SupersededByID != nil {
		return domainerror.ErrAlreadySettled
	}
	for _, e := range s.entries {
		if e.SupersedesID != nil && *e.SupersedesID == original.ID {
			return domainerror.ErrAlreadySettled
		}
	}

	s.entries[realized.ID] = realized.Clone()
	s.entries[original.ID] = original.Clone()
	return nil
}

func matchesIncome(e *entity.IncomeEntry, f adapter.IncomeFilter) bool {
	if len(f.Statuses) > 0 && !containsIncomeStatus(f.Statuses, e.Status) {
		return false
	}
	if containsIncomeStatus(f.ExcludeStatuses, e.Status) {
		return false
	}
	if f.DateFrom != nil && e.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.Date.After(*f.DateTo) {
		return false
	}
	if f.ReceivedFrom != nil && (e.ReceivedDate == nil || e.ReceivedDate.Before(*f.ReceivedFrom)) {
		return false
	}
	if f.ReceivedTo != nil && (e.ReceivedDate == nil || e.ReceivedDate.After(*f.ReceivedTo)) {
		return false
	}
	if f.OnHold != nil && e.IsOnHold != *f.OnHold {
		return false
	}
	if f.RetainerInstanceID != nil && (e.RetainerInstanceID == nil || *e.RetainerInstanceID != *f.RetainerInstanceID) {
		return false
	}
	if f.SourceRefID != nil && (e.SourceRefID == nil || *e.SourceRefID != *f.SourceRefID) {
		return false
	}
	return true
}

func containsIncomeStatus(list []entity.IncomeStatus, s entity.IncomeStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var _ adapter.IncomeRepository = (*IncomeStore)(nil)
