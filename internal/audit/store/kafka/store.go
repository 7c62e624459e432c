// Package kafka publishes decision records to a Kafka topic. Produces are
// synchronous with full-ISR acks so the fail-closed audit contract holds: an
// unacknowledged record fails the decision attempt.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"remedia/internal/audit"
)

const defaultTopic = "remedia.audit"

type Store struct {
	client *kgo.Client
}

func New(client *kgo.Client) *Store {
	return &Store{client: client}
}

// Dial builds a producer-only client for the audit topic.
func Dial(brokers []string, topic string) (*kgo.Client, error) {
	if topic == "" {
		topic = defaultTopic
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial kafka: %w", err)
	}
	return client, nil
}

func (s *Store) Append(ctx context.Context, rec audit.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	// Key by threat ID so all attempts for one threat land in one partition.
	record := &kgo.Record{Key: []byte(rec.ThreatID), Value: payload}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit record: %w", err)
	}
	return nil
}
