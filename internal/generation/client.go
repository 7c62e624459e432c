// Package generation wraps the text-generation backend. The core treats it
// as an opaque, possibly slow, possibly failing text oracle: no retries, no
// response interpretation beyond extracting the completion text.
package generation

import (
	"context"

	"remedia/internal/prompt"
)

// Client is the generation backend collaborator injected into the approval
// gate. Implementations must honor context cancellation and return
// sentinel.ErrTimeout (wrapped) when the backend misses its deadline, and
// sentinel.ErrUnavailable (wrapped) for any other backend fault.
type Client interface {
	Generate(ctx context.Context, p prompt.Prompt) (string, error)
}
