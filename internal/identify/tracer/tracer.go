// Package tracer provides a lightweight tracing abstraction for the identify module.
//
// The interface decouples the service layer from OpenTelemetry APIs: handlers
// and services emit spans through it, and the adapter in otel.go binds those
// spans to the global tracer provider in production. Tests use NewNoop.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context contains the new span and should be passed to
	// child operations. The span must be ended by calling Span.End().
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names used by the identify module.
const (
	SpanDetect        = "identify.detect"
	SpanValidate      = "identify.validate"
	SpanValidateBatch = "identify.validate_batch"
	SpanParse         = "identify.parse"
	SpanExtract       = "identify.extract"
	SpanExplain       = "identify.explain"
)

// Attribute keys used by the identify module.
const (
	AttrScheme     = "scheme"
	AttrSchemes    = "schemes"
	AttrValid      = "valid"
	AttrCandidates = "candidates"
	AttrBatchSize  = "batch.size"
	AttrMatches    = "matches"
	AttrTextBytes  = "text.bytes"
)
