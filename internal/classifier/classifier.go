// Package classifier flags destructive intent in generated recommendation
// text. The check is a deliberately naive token-set membership test:
// over-flagging only triggers a confirmation requirement (the safe
// direction), while under-flagging is a documented residual risk of the
// keyword approach rather than something this package tries to solve with a
// smarter model.
package classifier

import (
	"strings"
)

// defaultKeywords is the built-in destructive vocabulary.
var defaultKeywords = []string{"delete", "remove", "kill", "uninstall", "erase"}

// tokenCutset strips the punctuation that typically clings to keywords in
// prose ("delete," / "remove.").
const tokenCutset = ".,;:!?()[]\"'`"

// Classifier holds the destructive vocabulary. The zero value is unusable;
// construct with New or NewFromFile.
type Classifier struct {
	vocabulary map[string]struct{}
}

// New builds a classifier from the default vocabulary plus any extra
// keywords. Keywords are matched case-insensitively.
func New(extra ...string) *Classifier {
	c := &Classifier{vocabulary: make(map[string]struct{}, len(defaultKeywords)+len(extra))}
	for _, kw := range defaultKeywords {
		c.add(kw)
	}
	for _, kw := range extra {
		c.add(kw)
	}
	return c
}

func (c *Classifier) add(keyword string) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword != "" {
		c.vocabulary[keyword] = struct{}{}
	}
}

// IsDestructive reports whether any token of text is in the destructive
// vocabulary. It is total: empty or unparseable text returns false, it never
// errors and never panics.
func (c *Classifier) IsDestructive(text string) bool {
	if c == nil || text == "" {
		return false
	}
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, tokenCutset)
		if _, ok := c.vocabulary[token]; ok {
			return true
		}
	}
	return false
}

// Keywords returns the vocabulary in no particular order, for logging and
// introspection.
func (c *Classifier) Keywords() []string {
	out := make([]string, 0, len(c.vocabulary))
	for kw := range c.vocabulary {
		out = append(out, kw)
	}
	return out
}
