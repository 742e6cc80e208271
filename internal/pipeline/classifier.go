package pipeline

import (
	"strings"

	"github.com/samber/lo"
)

// Classifier decides whether a plain-text status message reports a failure by
// looking for any configured keyword.
type Classifier struct {
	keywords []string
}

// NewClassifier creates a Classifier; blank and duplicate keywords are dropped.
func NewClassifier(keywords ...string) Classifier {
	return Classifier{keywords: lo.Uniq(lo.Compact(keywords))}
}

// IsFailure reports whether msg contains a failure keyword.
func (c Classifier) IsFailure(msg string) bool {
	return lo.ContainsBy(c.keywords, func(k string) bool {
		return strings.Contains(msg, k)
	})
}

// Keywords returns the configured keywords.
func (c Classifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}
