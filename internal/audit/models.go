// Package audit is the durable record of every decision attempt. Exactly one
// record is appended per attempt, including denials and upstream failures;
// the log never silently drops an outcome.
package audit

import "time"

// Record is the unit written to the audit log and returned to callers. The
// log copy and the response copy are separate values; nothing mutates a
// record after it is created.
//
// Invariant: Approved is true only when Destructive is false or the caller
// supplied explicit prior confirmation at decision time.
type Record struct {
	ID             string    `json:"id"`
	ThreatID       string    `json:"threat_id"`
	Recommendation string    `json:"recommendation"`
	Destructive    bool      `json:"destructive"`
	Approved       bool      `json:"approved"`
	Notes          string    `json:"notes,omitempty"`
	RequestID      string    `json:"request_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
