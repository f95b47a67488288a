// Package scrub removes personally identifying substrings from
// generated text before it is cached or returned. The filters are
// best-effort pattern matches, not a guarantee of anonymity.
package scrub

import (
	"regexp"

	"github.com/quartetlab/quartet/internal/ports"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Phone numbers: optional leading + or (, then at least nine characters of
	// digits with common separators, ending in a digit. The length floor
	// keeps short numeric runs (years, counts) untouched.
	phonePattern = regexp.MustCompile(`[+(]?[0-9][0-9()\-.\s]{7,}[0-9]`)
)

// Regex is a Scrubber that replaces email addresses with "[email]" and
// phone-like digit runs with "[phone]". All other characters pass
// through unchanged.
type Regex struct{}

var _ ports.Scrubber = Regex{}

// NewRegex returns the pattern-based scrubber.
func NewRegex() Regex { return Regex{} }

// Scrub replaces each matched span with its placeholder. Emails are
// replaced first so their digit-bearing local parts cannot be half-eaten
// by the phone pattern.
func (Regex) Scrub(text string) string {
	text = emailPattern.ReplaceAllString(text, "[email]")
	text = phonePattern.ReplaceAllString(text, "[phone]")
	return text
}

// Noop is a pass-through Scrubber for configurations that disable
// scrubbing.
type Noop struct{}

var _ ports.Scrubber = Noop{}

// Scrub returns text unchanged.
func (Noop) Scrub(text string) string { return text }
