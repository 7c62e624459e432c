package gate

import "remedia/internal/threat"

// DecideRequest is one decision attempt.
type DecideRequest struct {
	Threat threat.Record

	// Confirm asserts that out-of-band human approval was obtained before
	// this call. There is no interactive prompt anywhere in this protocol;
	// absence of confirmation is treated identically to explicit refusal.
	Confirm bool
}

// Notes written into audit records at each terminal state. Fixed strings so
// the log is greppable.
const (
	noteDenied    = "Destructive action denied: caller must supply prior confirmation."
	noteConfirmed = "Destructive action approved with caller-supplied prior confirmation."
)
