package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// ParseDate parses an optional YYYY-MM-DD value. Empty input yields the zero time.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(valueobject.DateLayout, value)
}

// ParseOptionalUUID parses an optional identifier.
func ParseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(valueobject.DateLayout)
	return &s
}

func formatUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
