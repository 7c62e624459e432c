package handler

import (
	"time"

	"remedia/internal/audit"
	"remedia/internal/batch"
)

// DecisionResponse is the HTTP shape of one decision record.
type DecisionResponse struct {
	ThreatID       string    `json:"threat_id"`
	Recommendation string    `json:"recommendation"`
	Destructive    bool      `json:"destructive"`
	Approved       bool      `json:"approved"`
	Notes          string    `json:"notes,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// BatchResponse is the HTTP response for POST /batch: one entry per input
// threat, in input order.
type BatchResponse struct {
	Report []DecisionResponse `json:"report"`
}

// FromRecord converts an audit record to its HTTP response shape.
func FromRecord(rec *audit.Record) *DecisionResponse {
	return &DecisionResponse{
		ThreatID:       rec.ThreatID,
		Recommendation: rec.Recommendation,
		Destructive:    rec.Destructive,
		Approved:       rec.Approved,
		Notes:          rec.Notes,
		Timestamp:      rec.Timestamp,
	}
}

// FromReport converts a batch report to its HTTP response shape.
func FromReport(report batch.Report) *BatchResponse {
	out := make([]DecisionResponse, len(report))
	for i := range report {
		out[i] = *FromRecord(&report[i])
	}
	return &BatchResponse{Report: out}
}
