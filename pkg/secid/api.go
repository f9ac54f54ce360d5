package secid

import (
	"fmt"
	"strings"

	dErrors "secid-gateway/pkg/domain-errors"
)

// AmbiguityMode controls what Parse does when more than one scheme
// validates the same input.
type AmbiguityMode int

const (
	// AmbiguityFirst silently resolves to the most specific candidate.
	AmbiguityFirst AmbiguityMode = iota
	// AmbiguityRaise fails with an ambiguous-match error naming every
	// candidate.
	AmbiguityRaise
)

type parseConfig struct {
	schemes []Scheme
	mode    AmbiguityMode
}

// ParseOption configures Parse and its variants.
type ParseOption func(*parseConfig)

// WithSchemes restricts parsing to the given schemes.
func WithSchemes(schemes ...Scheme) ParseOption {
	return func(cfg *parseConfig) { cfg.schemes = schemes }
}

// FailOnAmbiguity switches Parse to AmbiguityRaise.
func FailOnAmbiguity() ParseOption {
	return func(cfg *parseConfig) { cfg.mode = AmbiguityRaise }
}

// API is the stateless coordination surface over one registry. It keeps no
// state across calls beyond the frozen registry itself.
type API struct {
	reg  *Registry
	det  *Detector
	scan *Scanner
}

// New builds an API over a fresh full registry.
func New() *API {
	return NewWith(NewRegistry())
}

// NewWith builds an API over an explicitly supplied registry.
func NewWith(reg *Registry) *API {
	return &API{reg: reg, det: NewDetector(reg), scan: NewScanner(reg)}
}

// Registry exposes the underlying registry for callers that need the scheme
// list.
func (a *API) Registry() *Registry { return a.reg }

// Detect returns the schemes input validates under, most specific first.
func (a *API) Detect(input string) []Scheme {
	return a.det.Detect(input)
}

// IsValid reports whether input validates under any of the given schemes,
// or under any scheme at all when the restriction is empty.
func (a *API) IsValid(input string, schemes ...Scheme) (bool, error) {
	resolved, err := a.reg.resolve(schemes)
	if err != nil {
		return false, err
	}
	return len(a.det.detectAmong(input, resolved)) > 0, nil
}

// ParseAs builds an ID under one explicit scheme. It never fails on bad
// identifier input; the returned ID simply reports its issues.
func (a *API) ParseAs(scheme Scheme, raw string) (*ID, error) {
	sp, ok := a.reg.spec(scheme)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnknownScheme, fmt.Sprintf("unknown identifier scheme %q", scheme))
	}
	return newID(sp, raw), nil
}

// ValidAs reports whether raw is a valid identifier of one explicit scheme.
func (a *API) ValidAs(scheme Scheme, raw string) (bool, error) {
	id, err := a.ParseAs(scheme, raw)
	if err != nil {
		return false, err
	}
	return id.Valid(), nil
}

// Parse detects the candidate schemes for input and returns an ID of the
// winner. With the default AmbiguityFirst mode the most specific candidate
// wins silently; under FailOnAmbiguity multiple candidates are an error.
// No candidate at all yields (nil, nil).
func (a *API) Parse(input string, opts ...ParseOption) (*ID, error) {
	cfg := applyParseOptions(opts)
	candidates, err := a.candidates(input, cfg.schemes)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	if cfg.mode == AmbiguityRaise && len(candidates) > 1 {
		return nil, ambiguityError(input, candidates, cfg.schemes)
	}
	return a.ParseAs(candidates[0], input)
}

// ParseStrict is Parse, but no candidate at all is an error instead of nil.
func (a *API) ParseStrict(input string, opts ...ParseOption) (*ID, error) {
	id, err := a.Parse(input, opts...)
	if err != nil {
		return nil, err
	}
	if id == nil {
		cfg := applyParseOptions(opts)
		return nil, noMatchError(input, cfg.schemes)
	}
	return id, nil
}

// ParseAll returns an ID for every candidate scheme, in specificity order.
// The ambiguity mode is irrelevant here; the slice may be empty.
func (a *API) ParseAll(input string, opts ...ParseOption) ([]*ID, error) {
	cfg := applyParseOptions(opts)
	candidates, err := a.candidates(input, cfg.schemes)
	if err != nil {
		return nil, err
	}
	out := make([]*ID, 0, len(candidates))
	for _, s := range candidates {
		id, err := a.ParseAs(s, input)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// ParseAllStrict is ParseAll, but an empty result is an error.
func (a *API) ParseAllStrict(input string, opts ...ParseOption) ([]*ID, error) {
	ids, err := a.ParseAll(input, opts...)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		cfg := applyParseOptions(opts)
		return nil, noMatchError(input, cfg.schemes)
	}
	return ids, nil
}

// Extract returns every identifier occurrence in text, in position order.
func (a *API) Extract(text string, schemes ...Scheme) ([]Match, error) {
	return a.scan.Extract(text, schemes...)
}

// Scan returns a lazy match iterator over text.
func (a *API) Scan(text string, schemes ...Scheme) (*Iter, error) {
	return a.scan.Scan(text, schemes...)
}

// Diagnosis is the per-scheme view Explain produces: whether the input is
// valid under the scheme and, if not, the full ordered issue list.
type Diagnosis struct {
	Scheme Scheme  `json:"scheme"`
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Explain validates input against every scheme in the (possibly restricted)
// set and reports each outcome. A diagnostic surface, not a decision one.
func (a *API) Explain(input string, schemes ...Scheme) ([]Diagnosis, error) {
	resolved, err := a.reg.resolve(schemes)
	if err != nil {
		return nil, err
	}
	out := make([]Diagnosis, 0, len(resolved))
	for _, s := range resolved {
		id, err := a.ParseAs(s, input)
		if err != nil {
			return nil, err
		}
		out = append(out, Diagnosis{Scheme: s, Valid: id.Valid(), Issues: id.Issues()})
	}
	return out, nil
}

func (a *API) candidates(input string, restriction []Scheme) ([]Scheme, error) {
	resolved, err := a.reg.resolve(restriction)
	if err != nil {
		return nil, err
	}
	return a.det.detectAmong(input, resolved), nil
}

func applyParseOptions(opts []ParseOption) parseConfig {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func noMatchError(input string, restriction []Scheme) error {
	return dErrors.New(dErrors.CodeInvalidFormat,
		fmt.Sprintf("no identifier scheme matches %q%s", strings.TrimSpace(input), restrictionSuffix(restriction)))
}

func ambiguityError(input string, candidates, restriction []Scheme) error {
	return dErrors.New(dErrors.CodeAmbiguousMatch,
		fmt.Sprintf("%q matches multiple schemes: %v%s", strings.TrimSpace(input), candidates, restrictionSuffix(restriction)))
}

// std backs the package-level convenience functions.
var std = New()

// Detect runs detection on the default API.
func Detect(input string) []Scheme { return std.Detect(input) }

// IsValid runs validity detection on the default API.
func IsValid(input string, schemes ...Scheme) (bool, error) { return std.IsValid(input, schemes...) }

// ParseAs parses under one explicit scheme on the default API.
func ParseAs(scheme Scheme, raw string) (*ID, error) { return std.ParseAs(scheme, raw) }

// ValidAs checks one explicit scheme on the default API.
func ValidAs(scheme Scheme, raw string) (bool, error) { return std.ValidAs(scheme, raw) }

// Parse parses on the default API.
func Parse(input string, opts ...ParseOption) (*ID, error) { return std.Parse(input, opts...) }

// ParseStrict parses on the default API, failing on no match.
func ParseStrict(input string, opts ...ParseOption) (*ID, error) {
	return std.ParseStrict(input, opts...)
}

// ParseAll parses every candidate on the default API.
func ParseAll(input string, opts ...ParseOption) ([]*ID, error) { return std.ParseAll(input, opts...) }

// ParseAllStrict parses every candidate on the default API, failing on none.
func ParseAllStrict(input string, opts ...ParseOption) ([]*ID, error) {
	return std.ParseAllStrict(input, opts...)
}

// Extract scans text on the default API.
func Extract(text string, schemes ...Scheme) ([]Match, error) { return std.Extract(text, schemes...) }

// Scan returns a lazy match iterator on the default API.
func Scan(text string, schemes ...Scheme) (*Iter, error) { return std.Scan(text, schemes...) }

// Explain diagnoses input on the default API.
func Explain(input string, schemes ...Scheme) ([]Diagnosis, error) {
	return std.Explain(input, schemes...)
}
