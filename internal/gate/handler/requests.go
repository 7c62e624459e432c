package handler

import (
	"remedia/internal/threat"
	dErrors "remedia/pkg/domain-errors"
)

// RecommendRequest is the HTTP request body for POST /recommend.
type RecommendRequest struct {
	Threat threat.Record `json:"threat"`

	// Confirm asserts out-of-band human approval obtained before this call.
	Confirm bool `json:"confirm"`
}

// Validate validates the request envelope. Implements the Validatable
// interface for httputil.DecodeAndPrepare.
func (r *RecommendRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return r.Threat.Validate()
}

// BatchRequest is the HTTP request body for POST /batch.
type BatchRequest struct {
	Threats []threat.Record `json:"threats"`
}

// Validate checks only the envelope. Per-item problems (missing threat_id,
// unserializable extras) are handled inside the batch run, where they become
// placeholder report entries instead of rejecting the whole batch.
func (r *BatchRequest) Validate() error {
	if r == nil || r.Threats == nil {
		return dErrors.New(dErrors.CodeValidation, "threats is required")
	}
	return nil
}
