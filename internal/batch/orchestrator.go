// Package batch drives the approval gate over a collection of threats. Items
// are independent and failure-isolated: one bad record never aborts the run,
// and the report always has exactly one entry per input, in input order.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"remedia/internal/audit"
	"remedia/internal/gate"
	"remedia/internal/gate/metrics"
	"remedia/internal/threat"
	"remedia/pkg/requestcontext"
)

const defaultConcurrency = 4

// Report is the ordered batch outcome. Entry i always corresponds to input
// threat i, so callers can correlate by index without relying on threat_id
// uniqueness.
type Report []audit.Record

// Gate is the single-item decision collaborator. The orchestrator calls it
// as a library function, not over HTTP, so batch processing stays free of
// transport concerns.
type Gate interface {
	Decide(ctx context.Context, req gate.DecideRequest) (*audit.Record, error)
}

// Orchestrator runs batches with bounded concurrency.
type Orchestrator struct {
	gate        Gate
	logger      *slog.Logger
	metrics     *metrics.Metrics
	concurrency int
}

func NewOrchestrator(g Gate, logger *slog.Logger, m *metrics.Metrics, concurrency int) *Orchestrator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Orchestrator{gate: g, logger: logger, metrics: m, concurrency: concurrency}
}

// Run processes every threat and never returns an error: per-item faults
// become placeholder records with approved=false and a descriptive note.
// Batch mode always withholds confirmation regardless of any per-item hint;
// a bulk file must not be able to trigger mass destructive operations.
func (o *Orchestrator) Run(ctx context.Context, threats []threat.Record) Report {
	report := make(Report, len(threats))

	// Plain errgroup, no derived context: a failing item must not cancel its
	// siblings. Results land in the slice by input index, so report order is
	// input order no matter when items complete.
	var g errgroup.Group
	g.SetLimit(o.concurrency)

	for i, t := range threats {
		g.Go(func() error {
			rec, err := o.decideSafely(ctx, t)
			switch {
			case err == nil:
				report[i] = *rec
				o.metrics.IncrementBatchItem("approved")
			case rec != nil:
				// The gate already logged this denial; reuse its record.
				report[i] = *rec
				o.metrics.IncrementBatchItem("denied")
			default:
				report[i] = audit.Record{
					ThreatID:  t.ID,
					Approved:  false,
					Notes:     "failed: " + err.Error(),
					RequestID: requestcontext.RequestID(ctx),
					Timestamp: requestcontext.Now(ctx).UTC(),
				}
				o.metrics.IncrementBatchItem("failed")
			}
			if err != nil {
				o.logger.WarnContext(ctx, "batch item not approved",
					"threat_id", t.ID,
					"index", i,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
	return report
}

// decideSafely isolates unexpected faults: a panic in one item's processing
// is converted into an error instead of taking the batch down.
func (o *Orchestrator) decideSafely(ctx context.Context, t threat.Record) (rec *audit.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("unexpected fault: %v", r)
		}
	}()
	return o.gate.Decide(ctx, gate.DecideRequest{Threat: t, Confirm: false})
}
