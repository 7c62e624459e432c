// Package threat defines the caller-supplied threat record that flows
// through the recommendation pipeline. Records are immutable once received:
// nothing downstream mutates them.
package threat

import (
	"strings"

	dErrors "remedia/pkg/domain-errors"
)

// Record describes one detected threat. Only the ID is required; everything
// else is optional context for the generation backend.
type Record struct {
	ID          string `json:"threat_id"`
	Path        string `json:"file_path,omitempty"`
	Hash        string `json:"sha256,omitempty"`
	Description string `json:"description,omitempty"`
	Extra       Extras `json:"additional_info,omitempty"`
}

// Validate checks the caller contract: threat_id is required and unique per
// caller (uniqueness is the caller's responsibility, not enforced here).
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return dErrors.New(dErrors.CodeValidation, "threat_id is required")
	}
	if len(r.ID) > 128 {
		return dErrors.New(dErrors.CodeValidation, "threat_id must be at most 128 characters")
	}
	return nil
}
