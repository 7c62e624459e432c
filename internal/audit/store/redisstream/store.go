// Package redisstream appends decision records to a Redis stream. Streams
// are append-only and XADD is atomic per entry, which matches the audit-log
// contract without any client-side locking.
package redisstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"remedia/internal/audit"
)

const defaultStream = "remedia:audit"

type Store struct {
	client *redis.Client
	stream string
}

func New(client *redis.Client, stream string) *Store {
	if stream == "" {
		stream = defaultStream
	}
	return &Store{client: client, stream: stream}
}

func (s *Store) Append(ctx context.Context, rec audit.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"threat_id": rec.ThreatID,
			"record":    payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
