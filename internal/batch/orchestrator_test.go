package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remedia/internal/audit"
	"remedia/internal/audit/store/memory"
	"remedia/internal/classifier"
	"remedia/internal/gate"
	"remedia/internal/prompt"
	"remedia/internal/threat"
	"remedia/pkg/platform/sentinel"
)

// scriptedGenerator answers per threat ID; the prompt's user content always
// contains the serialized threat_id.
type scriptedGenerator struct {
	responses map[string]string
	failures  map[string]error
}

func (s scriptedGenerator) Generate(_ context.Context, p prompt.Prompt) (string, error) {
	for id, err := range s.failures {
		if strings.Contains(p.User, fmt.Sprintf("%q", id)) {
			return "", err
		}
	}
	for id, text := range s.responses {
		if strings.Contains(p.User, fmt.Sprintf("%q", id)) {
			return text, nil
		}
	}
	return "Monitor the host.", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrchestrator(gen scriptedGenerator, store audit.Store, concurrency int) *Orchestrator {
	svc := gate.NewService(gen, classifier.New(), audit.NewPublisher(store), discardLogger(), nil)
	return NewOrchestrator(svc, discardLogger(), nil, concurrency)
}

func threats(ids ...string) []threat.Record {
	out := make([]threat.Record, len(ids))
	for i, id := range ids {
		out[i] = threat.Record{ID: id}
	}
	return out
}

func TestRunIsolatesPerItemFailures(t *testing.T) {
	store := memory.NewStore()
	gen := scriptedGenerator{
		responses: map[string]string{
			"t-1": "Quarantine the file.",
			"t-3": "Monitor outbound traffic.",
		},
		failures: map[string]error{
			"t-2": fmt.Errorf("generation backend: %w", sentinel.ErrTimeout),
		},
	}
	o := newOrchestrator(gen, store, 1)

	report := o.Run(context.Background(), threats("t-1", "t-2", "t-3"))

	require.Len(t, report, 3)
	assert.Equal(t, "t-1", report[0].ThreatID)
	assert.True(t, report[0].Approved)

	assert.Equal(t, "t-2", report[1].ThreatID)
	assert.False(t, report[1].Approved)
	assert.Contains(t, report[1].Notes, "timeout")

	assert.Equal(t, "t-3", report[2].ThreatID)
	assert.True(t, report[2].Approved)
}

func TestRunNeverApprovesDestructiveItems(t *testing.T) {
	store := memory.NewStore()
	gen := scriptedGenerator{
		responses: map[string]string{
			"t-1": "Delete the dropper and reboot.",
		},
	}
	o := newOrchestrator(gen, store, 2)

	// Batch mode withholds confirmation even though a single-item call with
	// confirm=true would have approved this recommendation.
	report := o.Run(context.Background(), threats("t-1"))

	require.Len(t, report, 1)
	assert.False(t, report[0].Approved)
	assert.True(t, report[0].Destructive)
	assert.Contains(t, report[0].Notes, "denied")

	// The denial came from the gate, so it is also in the audit log.
	require.Equal(t, 1, store.Len())
	assert.False(t, store.List()[0].Approved)
}

func TestRunPreservesInputOrderUnderConcurrency(t *testing.T) {
	store := memory.NewStore()
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = fmt.Sprintf("t-%03d", i)
	}
	o := newOrchestrator(scriptedGenerator{}, store, 8)

	report := o.Run(context.Background(), threats(ids...))

	require.Len(t, report, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, report[i].ThreatID, "index %d", i)
	}
}

func TestRunProducesPlaceholderForInvalidItem(t *testing.T) {
	store := memory.NewStore()
	o := newOrchestrator(scriptedGenerator{}, store, 1)

	// Item without a threat_id is rejected by the gate but must not abort
	// the batch.
	input := []threat.Record{{ID: "t-1"}, {}, {ID: "t-3"}}
	report := o.Run(context.Background(), input)

	require.Len(t, report, 3)
	assert.True(t, report[0].Approved)
	assert.False(t, report[1].Approved)
	assert.Contains(t, report[1].Notes, "failed")
	assert.True(t, report[2].Approved)
}

type panickyGate struct{}

func (panickyGate) Decide(context.Context, gate.DecideRequest) (*audit.Record, error) {
	panic("boom")
}

func TestRunRecoversFromUnexpectedFaults(t *testing.T) {
	o := NewOrchestrator(panickyGate{}, discardLogger(), nil, 2)

	report := o.Run(context.Background(), threats("t-1", "t-2"))

	require.Len(t, report, 2)
	for i := range report {
		assert.False(t, report[i].Approved)
		assert.Contains(t, report[i].Notes, "unexpected fault")
	}
}

func TestRunEmptyInput(t *testing.T) {
	o := newOrchestrator(scriptedGenerator{}, memory.NewStore(), 1)
	report := o.Run(context.Background(), nil)
	assert.Empty(t, report)
}
