package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"remedia/pkg/requestcontext"
)

// Publisher captures decision records. It is append-only, synchronous, and
// fail-closed: Emit returning an error means the decision attempt must fail,
// because an unlogged decision can never be reported as approved.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit stamps missing metadata and appends the record. The stamped record is
// returned so the caller can hand the same value back to the client.
func (p *Publisher) Emit(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = requestcontext.Now(ctx).UTC()
	}
	if rec.RequestID == "" {
		rec.RequestID = requestcontext.RequestID(ctx)
	}
	if err := p.store.Append(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("append audit record for threat %q: %w", rec.ThreatID, err)
	}
	return rec, nil
}
