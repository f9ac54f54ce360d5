package secid

import (
	"fmt"

	dErrors "secid-gateway/pkg/domain-errors"
)

// Registry is the composition root for the scheme descriptors. It is built
// once, holds the thirteen specs in canonical order, and is never mutated,
// so concurrent readers need no locking. Detector, Scanner, and the facade
// take it as an explicit dependency.
type Registry struct {
	order []Scheme
	specs map[Scheme]*spec
}

// NewRegistry builds a registry over the full closed scheme set.
func NewRegistry() *Registry {
	specs := newSpecs()
	r := &Registry{
		order: make([]Scheme, 0, len(specs)),
		specs: make(map[Scheme]*spec, len(specs)),
	}
	for _, sp := range specs {
		r.order = append(r.order, sp.scheme)
		r.specs[sp.scheme] = sp
	}
	return r
}

// Schemes returns the scheme symbols in canonical (specificity) order.
func (r *Registry) Schemes() []Scheme {
	out := make([]Scheme, len(r.order))
	copy(out, r.order)
	return out
}

// Info describes one scheme's published shape.
type Info struct {
	Scheme      Scheme `json:"scheme"`
	DisplayName string `json:"display_name"`
	MinLength   int    `json:"min_length"`
	MaxLength   int    `json:"max_length"`
	CheckDigit  bool   `json:"check_digit"`
}

// Describe returns the published shape of a single scheme.
func (r *Registry) Describe(s Scheme) (Info, error) {
	sp, ok := r.specs[s]
	if !ok {
		return Info{}, dErrors.New(dErrors.CodeUnknownScheme, fmt.Sprintf("unknown identifier scheme %q", s))
	}
	return Info{
		Scheme:      sp.scheme,
		DisplayName: sp.display,
		MinLength:   sp.minLen,
		MaxLength:   sp.maxLen,
		CheckDigit:  sp.verify != nil,
	}, nil
}

// DescribeAll returns Info for every scheme in canonical order.
func (r *Registry) DescribeAll() []Info {
	out := make([]Info, 0, len(r.order))
	for _, s := range r.order {
		info, _ := r.Describe(s)
		out = append(out, info)
	}
	return out
}

// spec looks up the descriptor for a scheme.
func (r *Registry) spec(s Scheme) (*spec, bool) {
	sp, ok := r.specs[s]
	return sp, ok
}

// resolve turns a caller restriction into a canonical-ordered scheme list.
// An empty restriction means every registered scheme. Unknown entries fail
// immediately, before any matching work happens.
func (r *Registry) resolve(restriction []Scheme) ([]Scheme, error) {
	if len(restriction) == 0 {
		return r.order, nil
	}
	allowed := make(map[Scheme]struct{}, len(restriction))
	for _, s := range restriction {
		if _, ok := r.specs[s]; !ok {
			return nil, dErrors.New(dErrors.CodeUnknownScheme, fmt.Sprintf("unknown identifier scheme %q", s))
		}
		allowed[s] = struct{}{}
	}
	out := make([]Scheme, 0, len(allowed))
	for _, s := range r.order {
		if _, ok := allowed[s]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// restrictionSuffix renders a scheme restriction for error messages.
func restrictionSuffix(schemes []Scheme) string {
	if len(schemes) == 0 {
		return ""
	}
	return fmt.Sprintf(" (restricted to %v)", schemes)
}
