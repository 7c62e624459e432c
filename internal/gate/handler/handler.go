package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"remedia/internal/audit"
	"remedia/internal/batch"
	"remedia/internal/gate"
	"remedia/internal/threat"
	dErrors "remedia/pkg/domain-errors"
	"remedia/pkg/platform/httputil"
	"remedia/pkg/requestcontext"
)

// Service defines the single-item decision operation.
type Service interface {
	Decide(ctx context.Context, req gate.DecideRequest) (*audit.Record, error)
}

// BatchRunner defines the batch operation.
type BatchRunner interface {
	Run(ctx context.Context, threats []threat.Record) batch.Report
}

// Handler wires the decision endpoints to the gate and orchestrator.
type Handler struct {
	service Service
	batch   BatchRunner
	logger  *slog.Logger
}

// New constructs a decision handler with its dependencies.
func New(service Service, batchRunner BatchRunner, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		batch:   batchRunner,
		logger:  logger,
	}
}

// Register mounts decision endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/recommend", h.HandleRecommend)
	r.Post("/batch", h.HandleBatch)
}

// HandleRecommend handles POST /recommend requests.
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RecommendRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Decide(ctx, gate.DecideRequest{
		Threat:  req.Threat,
		Confirm: req.Confirm,
	})
	if err != nil {
		// Denials are expected policy outcomes; only backend and audit
		// faults are errors from the service's point of view.
		if dErrors.CodeOf(err) == dErrors.CodeConfirmationRequired {
			h.logger.InfoContext(ctx, "decision denied pending confirmation",
				"request_id", requestID,
				"threat_id", req.Threat.ID,
			)
		} else {
			h.logger.ErrorContext(ctx, "decision failed",
				"request_id", requestID,
				"threat_id", req.Threat.ID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleBatch handles POST /batch requests. The response always carries one
// report entry per input threat; per-item failures never fail the batch.
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report := h.batch.Run(ctx, req.Threats)

	h.logger.InfoContext(ctx, "batch processed",
		"request_id", requestID,
		"items", len(report),
	)
	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}
