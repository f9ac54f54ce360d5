package secid

import (
	"fmt"

	dErrors "secid-gateway/pkg/domain-errors"
)

// Scheme names one identifier standard. The set is closed: the thirteen
// values below are the only ones the registry ever knows about.
type Scheme string

const (
	SchemeISIN    Scheme = "isin"
	SchemeCUSIP   Scheme = "cusip"
	SchemeSEDOL   Scheme = "sedol"
	SchemeFIGI    Scheme = "figi"
	SchemeLEI     Scheme = "lei"
	SchemeIBAN    Scheme = "iban"
	SchemeOCC     Scheme = "occ"
	SchemeCFI     Scheme = "cfi"
	SchemeFISN    Scheme = "fisn"
	SchemeCEI     Scheme = "cei"
	SchemeWKN     Scheme = "wkn"
	SchemeValoren Scheme = "valoren"
	SchemeCIK     Scheme = "cik"
)

// canonicalOrder is the fixed specificity order used to rank competing
// matches. Narrow, structurally constrained schemes come before the loose
// numeric ones so that when several validate the same string, the
// conventionally intended one wins. In particular a bare 6-digit numeral
// must resolve wkn, then valoren, then cik; that ordering is load-bearing
// and covered by tests.
var canonicalOrder = []Scheme{
	SchemeISIN,
	SchemeCUSIP,
	SchemeSEDOL,
	SchemeFIGI,
	SchemeLEI,
	SchemeIBAN,
	SchemeOCC,
	SchemeCFI,
	SchemeFISN,
	SchemeCEI,
	SchemeWKN,
	SchemeValoren,
	SchemeCIK,
}

// ParseScheme converts a caller-supplied name into a Scheme. Unknown names
// are a usage error, not a validation failure.
func ParseScheme(name string) (Scheme, error) {
	s := Scheme(name)
	for _, known := range canonicalOrder {
		if s == known {
			return s, nil
		}
	}
	return "", dErrors.New(dErrors.CodeUnknownScheme, fmt.Sprintf("unknown identifier scheme %q", name))
}

// String returns the short lowercase scheme name.
func (s Scheme) String() string { return string(s) }
