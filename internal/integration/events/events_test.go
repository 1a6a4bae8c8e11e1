package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/domain/valueobject"
)

type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Handle(ctx context.Context, msg valueobject.LedgerEventMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event any) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func sampleMessage() valueobject.LedgerEventMessage {
	return valueobject.LedgerEventMessage{
		Event:      valueobject.EventRecalculateLiquidCash,
		RecordID:   uuid.MustParse("8f14e45f-ceea-467f-a8f0-1d2b3c4d5e6f"),
		RecordKind: valueobject.RecordKindIncome,
		OccurredAt: time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher_Publish(t *testing.T) {
	ctx := context.Background()
	msg := sampleMessage()

	t.Run("delivers to every handler even when one fails", func(t *testing.T) {
		failing := new(MockHandler)
		healthy := new(MockHandler)
		failing.On("Handle", ctx, msg).Return(errors.New("cache down")).Once()
		healthy.On("Handle", ctx, msg).Return(nil).Once()

		d := NewDispatcher(nil, failing, healthy)
		require.NoError(t, d.Publish(ctx, valueobject.LedgerEventsTopic, msg))

		failing.AssertExpectations(t)
		healthy.AssertExpectations(t)
	})

	t.Run("returns the broker error", func(t *testing.T) {
		broker := new(MockPublisher)
		broker.On("Publish", ctx, valueobject.LedgerEventsTopic, msg).Return(errors.New("broker unavailable")).Once()

		d := NewDispatcher(broker)
		assert.Error(t, d.Publish(ctx, valueobject.LedgerEventsTopic, msg))
		broker.AssertExpectations(t)
	})

	t.Run("non ledger payloads skip handlers", func(t *testing.T) {
		handler := new(MockHandler)
		d := NewDispatcher(nil, handler)
		require.NoError(t, d.Publish(ctx, "other", map[string]string{"k": "v"}))
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestBuildMessage(t *testing.T) {
	msg := sampleMessage()

	km, err := buildMessage(valueobject.LedgerEventsTopic, msg)
	require.NoError(t, err)
	assert.Equal(t, valueobject.LedgerEventsTopic, km.Topic)
	assert.Equal(t, msg.RecordID.String(), string(km.Key))
	require.Len(t, km.Headers, 2)
	assert.Equal(t, "RECALCULATE_LIQUID_CASH", string(km.Headers[0].Value))

	var decoded valueobject.LedgerEventMessage
	require.NoError(t, json.Unmarshal(km.Value, &decoded))
	assert.Equal(t, msg, decoded)

	_, err = buildMessage("bad", make(chan int))
	assert.Error(t, err)
}
