package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// KafkaPublisher writes events as JSON messages. The topic is set per message.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, writeTimeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			WriteTimeout:           writeTimeout,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish implements adapter.EventPublisher.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event any) error {
	msg, err := buildMessage(topic, event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event to %s: %w", topic, err)
	}
	return nil
}

// Close flushes pending writes and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// buildMessage keys ledger events by record so every event for a record lands
// on the same partition.
func buildMessage(topic string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Value: data,
	}
	if ledgerMsg, ok := event.(valueobject.LedgerEventMessage); ok {
		msg.Key = []byte(ledgerMsg.RecordID.String())
		msg.Headers = []kafka.Header{
			{Key: "event", Value: []byte(ledgerMsg.Event)},
			{Key: "record_kind", Value: []byte(ledgerMsg.RecordKind)},
		}
	}
	return msg, nil
}

var _ adapter.EventPublisher = (*KafkaPublisher)(nil)
