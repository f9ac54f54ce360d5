package handler

import (
	"secid-gateway/internal/identify/models"
	"secid-gateway/pkg/secid"
)

// DetectResponse lists candidate schemes, most specific first.
type DetectResponse struct {
	Value   string   `json:"value"`
	Schemes []string `json:"schemes"`
}

// BatchValidateResponse carries one result per batch input, in input order.
type BatchValidateResponse struct {
	Scheme  string               `json:"scheme"`
	Results []models.BatchResult `json:"results"`
}

// ExtractResponse lists the identifiers found in the scanned text.
type ExtractResponse struct {
	Matches []models.Match `json:"matches"`
	Count   int            `json:"count"`
}

// ExplainResponse carries the per-scheme diagnoses for one value.
type ExplainResponse struct {
	Value     string             `json:"value"`
	Diagnoses []models.Diagnosis `json:"diagnoses"`
}

// SchemesResponse lists every supported scheme and its published shape.
type SchemesResponse struct {
	Schemes []secid.Info `json:"schemes"`
}
