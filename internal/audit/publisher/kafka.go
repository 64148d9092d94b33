package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"kyntel/internal/audit"
)

// Kafka publishes audit events to a Kafka topic. Production is asynchronous;
// delivery failures are logged, never surfaced to callers. Kafka is the
// source of truth for the audit trail.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafka connects to the brokers and ensures the audit topic exists.
func NewKafka(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	resps, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("create audit topic: %w", err)
	}
	for _, resp := range resps {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			client.Close()
			return nil, fmt.Errorf("create audit topic %q: %w", resp.Topic, resp.Err)
		}
	}

	return &Kafka{client: client, topic: topic, logger: logger}, nil
}

// Publish produces the event asynchronously, keyed by entity ID so events for
// one entity stay ordered within a partition.
func (k *Kafka) Publish(ctx context.Context, event audit.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		k.logger.ErrorContext(ctx, "marshal audit event", "action", event.Action, "error", err)
		return
	}

	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(event.EntityID),
		Value: value,
	}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			k.logger.Error("audit event delivery failed",
				"action", event.Action,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	})
}

// Close flushes outstanding records and closes the client.
func (k *Kafka) Close() {
	k.client.Close()
}
