package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remedia/internal/audit"
	"remedia/internal/audit/store/memory"
	"remedia/internal/classifier"
	"remedia/internal/prompt"
	"remedia/internal/threat"
	dErrors "remedia/pkg/domain-errors"
	"remedia/pkg/platform/sentinel"
)

func threatRecord(id string) threat.Record {
	return threat.Record{ID: id, Description: "ransomware encrypting /home"}
}

type stubGenerator struct {
	fn func(ctx context.Context, p prompt.Prompt) (string, error)
}

func (s stubGenerator) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	return s.fn(ctx, p)
}

func fixedGenerator(text string) stubGenerator {
	return stubGenerator{fn: func(context.Context, prompt.Prompt) (string, error) {
		return text, nil
	}}
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Record) error {
	return errors.New("disk full")
}

func newTestService(gen stubGenerator, store audit.Store) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(gen, classifier.New(), audit.NewPublisher(store), logger, nil)
}

func TestDecideNonDestructiveAutoApproves(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(fixedGenerator("Quarantine the file and monitor traffic."), store)

	// The confirm flag is irrelevant for non-destructive recommendations.
	for _, confirm := range []bool{false, true} {
		rec, err := svc.Decide(context.Background(), DecideRequest{
			Threat:  threatRecord("t-1"),
			Confirm: confirm,
		})
		require.NoError(t, err)
		assert.True(t, rec.Approved)
		assert.False(t, rec.Destructive)
		assert.Empty(t, rec.Notes)
		assert.False(t, rec.Timestamp.IsZero())
	}
	assert.Equal(t, 2, store.Len(), "one audit record per attempt")
}

func TestDecideDestructiveWithoutConfirmationDenies(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(fixedGenerator("Quarantine and delete the encrypted files immediately."), store)

	rec, err := svc.Decide(context.Background(), DecideRequest{Threat: threatRecord("malware-001")})

	require.Error(t, err)
	assert.Equal(t, dErrors.CodeConfirmationRequired, dErrors.CodeOf(err))

	// The denial record is returned and logged.
	require.NotNil(t, rec)
	assert.False(t, rec.Approved)
	assert.True(t, rec.Destructive)
	assert.Contains(t, rec.Notes, "denied")

	logged := store.ListByThreat("malware-001")
	require.Len(t, logged, 1)
	assert.False(t, logged[0].Approved)
	assert.True(t, logged[0].Destructive)
}

func TestDecideDestructiveWithConfirmationApproves(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(fixedGenerator("Quarantine and delete the encrypted files immediately."), store)

	rec, err := svc.Decide(context.Background(), DecideRequest{
		Threat:  threatRecord("malware-001"),
		Confirm: true,
	})

	require.NoError(t, err)
	assert.True(t, rec.Approved)
	assert.True(t, rec.Destructive)
	assert.Contains(t, rec.Notes, "prior confirmation")
	assert.Equal(t, 1, store.Len())
}

func TestDecideGenerationFailureIsLogged(t *testing.T) {
	store := memory.NewStore()
	gen := stubGenerator{fn: func(context.Context, prompt.Prompt) (string, error) {
		return "", fmt.Errorf("generation backend: connection refused: %w", sentinel.ErrUnavailable)
	}}
	svc := newTestService(gen, store)

	rec, err := svc.Decide(context.Background(), DecideRequest{Threat: threatRecord("t-2")})

	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, dErrors.CodeGenerationFailed, dErrors.CodeOf(err))

	// Audit completeness holds on upstream failure.
	logged := store.ListByThreat("t-2")
	require.Len(t, logged, 1)
	assert.False(t, logged[0].Approved)
	assert.False(t, logged[0].Destructive)
	assert.Contains(t, logged[0].Notes, "generation failed")
}

func TestDecideGenerationTimeoutHasDistinctCode(t *testing.T) {
	store := memory.NewStore()
	gen := stubGenerator{fn: func(context.Context, prompt.Prompt) (string, error) {
		return "", fmt.Errorf("generation backend: %w", sentinel.ErrTimeout)
	}}
	svc := newTestService(gen, store)

	_, err := svc.Decide(context.Background(), DecideRequest{Threat: threatRecord("t-3")})

	require.Error(t, err)
	assert.Equal(t, dErrors.CodeGenerationTimeout, dErrors.CodeOf(err))
	assert.Equal(t, 1, store.Len())
}

func TestDecideInvalidThreatIsLoggedAndRejected(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(fixedGenerator("irrelevant"), store)

	rec, err := svc.Decide(context.Background(), DecideRequest{})

	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))

	require.Equal(t, 1, store.Len(), "even rejected input produces an audit record")
	assert.Contains(t, store.List()[0].Notes, "input rejected")
}

func TestDecideAuditFailureNeverReportsApproval(t *testing.T) {
	svc := newTestService(fixedGenerator("Monitor the host."), failingStore{})

	rec, err := svc.Decide(context.Background(), DecideRequest{Threat: threatRecord("t-4")})

	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, dErrors.CodeAuditUnavailable, dErrors.CodeOf(err))
}

func TestDecideAuditFailureOnDenialPath(t *testing.T) {
	svc := newTestService(fixedGenerator("delete the payload"), failingStore{})

	rec, err := svc.Decide(context.Background(), DecideRequest{Threat: threatRecord("t-5")})

	require.Error(t, err)
	assert.Nil(t, rec, "an unlogged denial is not returned either")
	assert.Equal(t, dErrors.CodeAuditUnavailable, dErrors.CodeOf(err))
}

func TestDecideIsIdempotentForFixedGeneration(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(fixedGenerator("Quarantine and delete the encrypted files immediately."), store)

	req := DecideRequest{Threat: threatRecord("malware-001")}
	for i := 0; i < 3; i++ {
		rec, err := svc.Decide(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeConfirmationRequired, dErrors.CodeOf(err))
		assert.True(t, rec.Destructive)
		assert.False(t, rec.Approved)
	}
	assert.Equal(t, 3, store.Len(), "exactly one record per attempt")
}
