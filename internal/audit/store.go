package audit

import "context"

// Store is an append-only sink for decision records. Append either persists
// the whole record or fails; there is no partial write. Implementations must
// serialize concurrent appends so records are never interleaved mid-entry.
type Store interface {
	Append(ctx context.Context, rec Record) error
}
