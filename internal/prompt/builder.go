// Package prompt turns a threat record into the structured input for the
// generation backend. Build is pure: no I/O, no clock, no randomness, so the
// same record always produces the same prompt.
package prompt

import (
	"encoding/json"
	"fmt"

	"remedia/internal/threat"
	dErrors "remedia/pkg/domain-errors"
)

// Prompt is the two-part model input every generation backend accepts.
type Prompt struct {
	System string
	User   string
}

const systemInstructions = "You are a cybersecurity assistant specialized in AV/EDR."

const userTemplate = "Threat Data:\n%s\n\n" +
	"Provide a concise recommendation that includes what to do, why it " +
	"matters, and if it is destructive (mention 'delete', 'remove', 'kill', " +
	"etc.). Return the recommendation in a single paragraph."

// Build serializes the full threat record, including the ordered extras
// mapping, so the backend sees complete context. A record that cannot be
// serialized fails with a validation error; fields are never silently
// dropped.
func Build(t threat.Record) (Prompt, error) {
	payload, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return Prompt{}, dErrors.Wrap(dErrors.CodeValidation, "threat record is not serializable", err)
	}
	return Prompt{
		System: systemInstructions,
		User:   fmt.Sprintf(userTemplate, payload),
	}, nil
}
