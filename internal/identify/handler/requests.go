package handler

import (
	s "secid-gateway/pkg/string"
)

// DetectRequest asks which schemes a single value validates under.
type DetectRequest struct {
	Value string `json:"value" validate:"required,notblank,max=256"`
}

func (r *DetectRequest) Sanitize() {
	s.TrimStrings(&r.Value)
}

// ValidateRequest checks one value against one named scheme.
type ValidateRequest struct {
	Value  string `json:"value" validate:"required,notblank,max=256"`
	Scheme string `json:"scheme" validate:"required,notblank"`
}

func (r *ValidateRequest) Sanitize() {
	s.TrimStrings(&r.Value, &r.Scheme)
}

// BatchValidateRequest checks a list of values against one named scheme.
// The service enforces the configured batch size limit.
type BatchValidateRequest struct {
	Values []string `json:"values" validate:"required,min=1,dive,max=256"`
	Scheme string   `json:"scheme" validate:"required,notblank"`
}

func (r *BatchValidateRequest) Sanitize() {
	s.TrimSlice(r.Values)
	s.TrimStrings(&r.Scheme)
}

// ParseRequest resolves one value to its best-matching scheme.
type ParseRequest struct {
	Value           string   `json:"value" validate:"required,notblank,max=256"`
	Schemes         []string `json:"schemes" validate:"max=13,dive,notblank"`
	FailOnAmbiguity bool     `json:"fail_on_ambiguity"`
}

func (r *ParseRequest) Sanitize() {
	s.TrimStrings(&r.Value)
	s.TrimSlice(r.Schemes)
}

// ExtractRequest scans free text for identifier occurrences.
type ExtractRequest struct {
	Text       string   `json:"text" validate:"required,max=65536"`
	Schemes    []string `json:"schemes" validate:"max=13,dive,notblank"`
	MaxResults int      `json:"max_results" validate:"min=0,max=1000"`
}

func (r *ExtractRequest) Sanitize() {
	s.TrimSlice(r.Schemes)
}

// ExplainRequest diagnoses one value against every scheme in the restriction.
type ExplainRequest struct {
	Value   string   `json:"value" validate:"required,notblank,max=256"`
	Schemes []string `json:"schemes" validate:"max=13,dive,notblank"`
}

func (r *ExplainRequest) Sanitize() {
	s.TrimStrings(&r.Value)
	s.TrimSlice(r.Schemes)
}
