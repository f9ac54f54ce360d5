package secid

import (
	"fmt"
	"regexp"
	"strings"
)

// Part is one named sub-field of a validated identifier, e.g. an ISIN's
// country code or an OCC symbol's expiry.
type Part struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// spec is the data-driven descriptor for one scheme: its cleaning policy,
// shape constraints, structural rules, and checksum. Specs are immutable
// after registry construction; all validation is free functions over them.
type spec struct {
	scheme  Scheme
	display string // uppercase name used in messages, e.g. "ISIN"

	minLen, maxLen int
	pattern        *regexp.Regexp
	checkWidth     int

	// keepSeparators leaves interior spaces and hyphens in place during
	// cleaning; they are meaningful for FISN and nothing else.
	keepSeparators bool

	// spaceGrouped marks schemes whose customary printed form breaks the
	// identifier into space separated groups, like an IBAN in blocks of
	// four. Only these schemes may claim a scanned span containing spaces.
	// FISN embeds spaces too but stays off this list; almost any prose
	// around a slash would satisfy its pattern.
	spaceGrouped bool

	// structural checks a named sub-field rule once length and characters
	// are known to be fine. Returns nil when the body is sound.
	structural func(body string) *Issue

	// verify reports whether the embedded check digit is self-consistent.
	// nil when the scheme has no check digit.
	verify func(body string) bool

	// parts splits a structurally valid body into named sub-fields.
	parts func(body string) []Part
}

// clean produces the canonical body: trimmed, separator-stripped per scheme
// policy, uppercased. Blank input cleans to the empty string.
func (sp *spec) clean(raw string) string {
	s := strings.TrimSpace(raw)
	if !sp.keepSeparators {
		s = strings.Map(func(r rune) rune {
			if r == ' ' || r == '-' {
				return -1
			}
			return r
		}, s)
	}
	return strings.ToUpper(s)
}

// validate runs the fallback pipeline over a cleaned body. Cheaper, more
// diagnostic checks run first and the pipeline stops at the first failing
// stage, so the caller always gets the most specific actionable reason and
// never a compound like invalid_length plus invalid_check_digit.
func (sp *spec) validate(body string) []Issue {
	if len(body) < sp.minLen || len(body) > sp.maxLen {
		return []Issue{{Code: IssueInvalidLength, Message: sp.lengthMessage()}}
	}
	if !sp.pattern.MatchString(body) {
		return []Issue{{
			Code:    IssueInvalidCharacters,
			Message: fmt.Sprintf("%s contains characters outside its alphabet or layout", sp.display),
		}}
	}
	if sp.structural != nil {
		if is := sp.structural(body); is != nil {
			return []Issue{*is}
		}
	}
	if sp.verify != nil && !sp.verify(body) {
		return []Issue{{
			Code:    IssueInvalidCheckDigit,
			Message: fmt.Sprintf("%s check digit does not match the computed value", sp.display),
		}}
	}
	return nil
}

func (sp *spec) lengthMessage() string {
	if sp.minLen == sp.maxLen {
		return fmt.Sprintf("%s must be %d characters", sp.display, sp.minLen)
	}
	return fmt.Sprintf("%s must be between %d and %d characters", sp.display, sp.minLen, sp.maxLen)
}
