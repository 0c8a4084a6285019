// Package security cleans user-supplied text before it is persisted or
// echoed back. Spot names, descriptions and regions arrive from arbitrary
// clients and end up rendered by web frontends, so markup is stripped at the
// write boundary instead of trusting every reader to escape.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips all HTML from free-text fields. The zero value is not
// usable; construct with NewSanitizer. Safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean removes markup from v and returns the trimmed plain text. Entities
// introduced by the policy are unescaped again so "Fish & Chips" survives a
// round trip.
func (s *Sanitizer) Clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}
