package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rulesFile is the YAML schema root for an operator-supplied vocabulary
// extension:
//
//	rules:
//	  destructive_keywords:
//	    - wipe
//	    - shred
type rulesFile struct {
	Rules struct {
		DestructiveKeywords []string `yaml:"destructive_keywords"`
	} `yaml:"rules"`
}

// NewFromFile builds a classifier from the default vocabulary extended by a
// YAML rules file. A missing path or file falls back to the defaults; a file
// that exists but does not parse is an error, since silently ignoring an
// operator's vocabulary would narrow the safety net without anyone noticing.
func NewFromFile(path string) (*Classifier, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("read classifier rules: %w", err)
	}

	var rules rulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse classifier rules: %w", err)
	}
	return New(rules.Rules.DestructiveKeywords...), nil
}
