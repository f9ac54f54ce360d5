package secid

import (
	"fmt"
	"strings"

	dErrors "secid-gateway/pkg/domain-errors"
)

// ID is one identifier under one scheme. It is an immutable value: the issue
// list is computed eagerly at construction and inspecting an ID never
// changes it, so two IDs built from the same raw input behave identically.
type ID struct {
	scheme Scheme
	spec   *spec
	raw    string
	body   string
	issues []Issue
}

func newID(sp *spec, raw string) *ID {
	body := sp.clean(raw)
	return &ID{
		scheme: sp.scheme,
		spec:   sp,
		raw:    raw,
		body:   body,
		issues: dedupe(sp.validate(body)),
	}
}

// Scheme returns the scheme this ID was parsed under.
func (id *ID) Scheme() Scheme { return id.scheme }

// Raw returns the original input, unmodified.
func (id *ID) Raw() string { return id.raw }

// Body returns the cleaned canonical body: trimmed, separators stripped per
// scheme policy, uppercased. It is populated even when the ID is invalid.
func (id *ID) Body() string { return id.body }

// String returns the cleaned body.
func (id *ID) String() string { return id.body }

// Valid reports whether the identifier passed every validation stage.
func (id *ID) Valid() bool { return len(id.issues) == 0 }

// Issues returns the ordered, code-deduplicated validation findings. Empty
// iff the identifier is valid.
func (id *ID) Issues() []Issue { return id.issues }

// Normalized returns the canonical form, or an error when the identifier is
// invalid.
func (id *ID) Normalized() (string, error) {
	if err := id.Check(); err != nil {
		return "", err
	}
	return id.body, nil
}

// Check returns nil for a valid identifier, or the first issue translated
// into the error taxonomy: length/character problems are format errors,
// sub-field problems structural violations, checksum problems check-digit
// mismatches. The message quotes the trimmed input as the caller wrote it.
func (id *ID) Check() error {
	if len(id.issues) == 0 {
		return nil
	}
	first := id.issues[0]
	return dErrors.New(issueKind(first.Code), fmt.Sprintf("%s %q: %s", id.spec.display, strings.TrimSpace(id.raw), first.Message))
}

// CheckDigit returns the trailing check-digit characters, or the empty
// string when the scheme has none or the identifier is invalid.
func (id *ID) CheckDigit() string {
	if !id.Valid() || id.spec.checkWidth == 0 {
		return ""
	}
	return id.body[len(id.body)-id.spec.checkWidth:]
}

// Parts returns the named sub-fields of a valid identifier, in layout order.
// Nil for invalid identifiers and for schemes without sub-field structure.
func (id *ID) Parts() []Part {
	if !id.Valid() || id.spec.parts == nil {
		return nil
	}
	return id.spec.parts(id.body)
}

// issueKind maps an issue code onto an error-taxonomy code.
func issueKind(code IssueCode) dErrors.Code {
	switch code {
	case IssueInvalidLength, IssueInvalidCharacters:
		return dErrors.CodeInvalidFormat
	case IssueInvalidCheckDigit:
		return dErrors.CodeCheckDigit
	default:
		return dErrors.CodeStructural
	}
}
