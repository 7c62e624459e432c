// Package gate implements the approval state machine for generated
// remediation recommendations: generate, classify, then either auto-approve
// or require prior confirmation, logging exactly one audit record per
// attempt before returning. The default for an unconfirmed destructive
// recommendation is denial; the gate never auto-executes anything it was not
// explicitly told to allow.
package gate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"remedia/internal/audit"
	"remedia/internal/classifier"
	"remedia/internal/gate/metrics"
	"remedia/internal/generation"
	"remedia/internal/prompt"
	dErrors "remedia/pkg/domain-errors"
	"remedia/pkg/platform/sentinel"
)

// Service drives one threat through the state machine. All collaborators are
// injected at construction; there are no package-level singletons, so tests
// substitute doubles freely.
type Service struct {
	generator  generation.Client
	classifier *classifier.Classifier
	auditor    *audit.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewService(
	generator generation.Client,
	cls *classifier.Classifier,
	auditor *audit.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		generator:  generator,
		classifier: cls,
		auditor:    auditor,
		logger:     logger,
		metrics:    m,
	}
}

// Decide runs one decision attempt. It returns the logged record on any
// terminal state that produced one: on success the approval record, and on a
// confirmation denial the denial record alongside the ConfirmationRequired
// error so batch mode can reuse it. Logging is synchronous and on the
// critical path; if the audit log cannot be written the attempt fails and is
// never reported as approved.
func (s *Service) Decide(ctx context.Context, req DecideRequest) (*audit.Record, error) {
	if err := req.Threat.Validate(); err != nil {
		return nil, s.rejectInput(ctx, req.Threat.ID, err)
	}

	p, err := prompt.Build(req.Threat)
	if err != nil {
		return nil, s.rejectInput(ctx, req.Threat.ID, err)
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, p)
	s.metrics.ObserveGenerateLatency(time.Since(start))
	if err != nil {
		return nil, s.failGeneration(ctx, req.Threat.ID, err)
	}

	destructive := s.classifier.IsDestructive(text)

	if destructive && !req.Confirm {
		// Fail-closed: the decision is denial, and the denial itself must be
		// durably logged before the caller hears about it.
		rec, logErr := s.auditor.Emit(ctx, audit.Record{
			ThreatID:       req.Threat.ID,
			Recommendation: text,
			Destructive:    true,
			Approved:       false,
			Notes:          noteDenied,
		})
		if logErr != nil {
			return nil, s.failAudit(ctx, req.Threat.ID, logErr)
		}
		s.metrics.IncrementOutcome("denied")
		s.logger.WarnContext(ctx, "destructive recommendation denied",
			"threat_id", req.Threat.ID,
			"record_id", rec.ID,
		)
		return &rec, dErrors.New(dErrors.CodeConfirmationRequired,
			"destructive recommendation requires explicit prior confirmation")
	}

	outcome := "approved"
	notes := ""
	if destructive {
		outcome = "approved_confirmed"
		notes = noteConfirmed
	}

	rec, logErr := s.auditor.Emit(ctx, audit.Record{
		ThreatID:       req.Threat.ID,
		Recommendation: text,
		Destructive:    destructive,
		Approved:       true,
		Notes:          notes,
	})
	if logErr != nil {
		return nil, s.failAudit(ctx, req.Threat.ID, logErr)
	}

	s.metrics.IncrementOutcome(outcome)
	s.logger.InfoContext(ctx, "recommendation approved",
		"threat_id", req.Threat.ID,
		"record_id", rec.ID,
		"destructive", destructive,
	)
	return &rec, nil
}

// rejectInput logs the attempt as a failure and surfaces the caller's
// validation error. Audit completeness holds even for bad input: one record
// per attempt, no silent drops.
func (s *Service) rejectInput(ctx context.Context, threatID string, cause error) error {
	if _, logErr := s.auditor.Emit(ctx, audit.Record{
		ThreatID: threatID,
		Approved: false,
		Notes:    "input rejected: " + cause.Error(),
	}); logErr != nil {
		return s.failAudit(ctx, threatID, logErr)
	}
	s.metrics.IncrementOutcome("input_rejected")
	return cause
}

// failGeneration logs the upstream failure before classification ever runs,
// then surfaces it with a code distinguishing timeout from other faults.
func (s *Service) failGeneration(ctx context.Context, threatID string, cause error) error {
	if _, logErr := s.auditor.Emit(ctx, audit.Record{
		ThreatID: threatID,
		Approved: false,
		Notes:    "generation failed: " + cause.Error(),
	}); logErr != nil {
		return s.failAudit(ctx, threatID, logErr)
	}
	s.metrics.IncrementOutcome("generation_failed")
	s.logger.ErrorContext(ctx, "generation backend failed",
		"threat_id", threatID,
		"error", cause,
	)
	code := dErrors.CodeGenerationFailed
	if errors.Is(cause, sentinel.ErrTimeout) {
		code = dErrors.CodeGenerationTimeout
	}
	return dErrors.Wrap(code, "recommendation generation failed", cause)
}

func (s *Service) failAudit(ctx context.Context, threatID string, cause error) error {
	s.metrics.IncrementOutcome("audit_failed")
	s.logger.ErrorContext(ctx, "audit log write failed",
		"threat_id", threatID,
		"error", cause,
	)
	return dErrors.Wrap(dErrors.CodeAuditUnavailable, "audit log unavailable", cause)
}
