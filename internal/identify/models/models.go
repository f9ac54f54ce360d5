// Package models holds the transport-agnostic result types the identify
// service produces.
package models

import "secid-gateway/pkg/secid"

// Issue is one validation failure reason.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Part is one named sub-field of a parsed identifier.
type Part struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Validation is the full report for one value under one scheme.
type Validation struct {
	Scheme     string  `json:"scheme"`
	Input      string  `json:"input"`
	Normalized string  `json:"normalized,omitempty"`
	Valid      bool    `json:"valid"`
	CheckDigit string  `json:"check_digit,omitempty"`
	Issues     []Issue `json:"issues,omitempty"`
	Parts      []Part  `json:"parts,omitempty"`
}

// BatchResult pairs one batch input with its validation outcome.
type BatchResult struct {
	Value  string      `json:"value"`
	Result *Validation `json:"result"`
}

// Match is one identifier occurrence found in free text.
type Match struct {
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// Diagnosis is the per-scheme outcome of an explain request.
type Diagnosis struct {
	Scheme string  `json:"scheme"`
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// FromID flattens a parsed identifier into a Validation report.
func FromID(id *secid.ID) *Validation {
	v := &Validation{
		Scheme: id.Scheme().String(),
		Input:  id.Raw(),
		Valid:  id.Valid(),
	}
	if id.Valid() {
		v.Normalized = id.Body()
		v.CheckDigit = id.CheckDigit()
		for _, p := range id.Parts() {
			v.Parts = append(v.Parts, Part{Name: p.Name, Value: p.Value})
		}
		return v
	}
	for _, is := range id.Issues() {
		v.Issues = append(v.Issues, Issue{Code: string(is.Code), Message: is.Message})
	}
	return v
}
