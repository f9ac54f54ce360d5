// Package service implements the identifier operations behind the HTTP API.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"secid-gateway/internal/identify/metrics"
	"secid-gateway/internal/identify/models"
	"secid-gateway/internal/identify/tracer"
	dErrors "secid-gateway/pkg/domain-errors"
	"secid-gateway/pkg/secid"
)

// batchConcurrency bounds the validation fan-out for batch requests.
const batchConcurrency = 8

type Option func(*Service)

// WithTracer injects a tracer. Defaults to the no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithMetrics injects the identify metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithBatchLimit caps the number of values per batch request.
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// Service coordinates detection, validation, parsing and extraction over a
// single identifier engine. It is stateless and safe for concurrent use.
type Service struct {
	api        *secid.API
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     tracer.Tracer
	batchLimit int
}

// NewService builds the identify service over a fresh identifier engine.
func NewService(logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		api:        secid.New(),
		logger:     logger,
		tracer:     tracer.NewNoop(),
		batchLimit: 16,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Detect returns the scheme names the value validates under, most specific
// first. An unrecognized value yields an empty slice, not an error.
func (s *Service) Detect(ctx context.Context, value string) ([]string, error) {
	_, span := s.tracer.Start(ctx, tracer.SpanDetect)
	var err error
	defer func() { span.End(err) }()

	schemes := s.api.Detect(value)
	out := make([]string, 0, len(schemes))
	for _, sc := range schemes {
		out = append(out, sc.String())
	}
	span.SetAttributes(tracer.Int64(tracer.AttrCandidates, int64(len(out))))
	if s.metrics != nil {
		s.metrics.DetectionsTotal.Inc()
		s.metrics.DetectionCounts.Observe(float64(len(out)))
	}
	return out, nil
}

// Validate checks one value against one named scheme and reports the full
// outcome. Only an unknown scheme name is an error; invalid identifiers come
// back as reports.
func (s *Service) Validate(ctx context.Context, value, scheme string) (*models.Validation, error) {
	_, span := s.tracer.Start(ctx, tracer.SpanValidate, tracer.String(tracer.AttrScheme, scheme))
	var err error
	defer func() { span.End(err) }()

	sc, err := secid.ParseScheme(scheme)
	if err != nil {
		return nil, err
	}
	id, err := s.api.ParseAs(sc, value)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Bool(tracer.AttrValid, id.Valid()))
	s.recordValidation(id)
	return models.FromID(id), nil
}

// ValidateBatch validates up to the configured limit of values against one
// scheme, fanning out across a bounded worker group. Result order matches
// input order.
func (s *Service) ValidateBatch(ctx context.Context, values []string, scheme string) ([]models.BatchResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanValidateBatch,
		tracer.String(tracer.AttrScheme, scheme),
		tracer.Int64(tracer.AttrBatchSize, int64(len(values))),
	)
	var err error
	defer func() { span.End(err) }()

	if len(values) == 0 {
		err = dErrors.New(dErrors.CodeValidation, "batch contains no values")
		return nil, err
	}
	if len(values) > s.batchLimit {
		s.logger.WarnContext(ctx, "batch request over limit",
			"size", len(values),
			"limit", s.batchLimit,
		)
		err = dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("batch exceeds the limit of %d values", s.batchLimit))
		return nil, err
	}
	sc, err := secid.ParseScheme(scheme)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]models.BatchResult, len(values))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, value := range values {
		i, value := i, value
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := s.api.ParseAs(sc, value)
			if err != nil {
				return err
			}
			s.recordValidation(id)
			// Each goroutine owns its slot, so no locking is needed.
			results[i] = models.BatchResult{Value: value, Result: models.FromID(id)}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BatchSize.Observe(float64(len(values)))
		s.metrics.BatchDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}
	return results, nil
}

// Parse resolves the value to its single best scheme and returns the parsed
// report. With failOnAmbiguity set, multiple candidate schemes are an error
// instead of resolving to the most specific one.
func (s *Service) Parse(ctx context.Context, value string, schemes []string, failOnAmbiguity bool) (*models.Validation, error) {
	_, span := s.tracer.Start(ctx, tracer.SpanParse,
		tracer.String(tracer.AttrSchemes, fmt.Sprintf("%v", schemes)),
	)
	var err error
	defer func() { span.End(err) }()

	restriction, err := parseSchemes(schemes)
	if err != nil {
		return nil, err
	}
	opts := []secid.ParseOption{secid.WithSchemes(restriction...)}
	if failOnAmbiguity {
		opts = append(opts, secid.FailOnAmbiguity())
	}

	id, err := s.api.ParseStrict(value, opts...)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeAmbiguousMatch) && s.metrics != nil {
			s.metrics.AmbiguousParses.Inc()
		}
		return nil, err
	}
	span.SetAttributes(tracer.String(tracer.AttrScheme, id.Scheme().String()))
	s.recordValidation(id)
	return models.FromID(id), nil
}

// Extract scans free text and returns every identifier occurrence in
// position order, optionally restricted to the named schemes.
func (s *Service) Extract(ctx context.Context, text string, schemes []string, maxResults int) ([]models.Match, error) {
	_, span := s.tracer.Start(ctx, tracer.SpanExtract,
		tracer.Int64(tracer.AttrTextBytes, int64(len(text))),
	)
	var err error
	defer func() { span.End(err) }()

	restriction, err := parseSchemes(schemes)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	iter, err := s.api.Scan(text, restriction...)
	if err != nil {
		return nil, err
	}
	var out []models.Match
	for {
		m, ok := iter.Next()
		if !ok {
			break
		}
		out = append(out, models.Match{
			Scheme: m.Scheme.String(),
			Value:  m.Value,
			Offset: m.Offset,
			Length: m.Length,
		})
		if maxResults > 0 && len(out) == maxResults {
			break
		}
	}

	span.SetAttributes(tracer.Int64(tracer.AttrMatches, int64(len(out))))
	if s.metrics != nil {
		s.metrics.ScanDurationMs.Observe(float64(time.Since(start).Milliseconds()))
		s.metrics.ScanMatches.Observe(float64(len(out)))
	}
	return out, nil
}

// Explain validates the value against every scheme in the restriction and
// reports each outcome, including the issue lists of the failing schemes.
func (s *Service) Explain(ctx context.Context, value string, schemes []string) ([]models.Diagnosis, error) {
	_, span := s.tracer.Start(ctx, tracer.SpanExplain)
	var err error
	defer func() { span.End(err) }()

	restriction, err := parseSchemes(schemes)
	if err != nil {
		return nil, err
	}
	diagnoses, err := s.api.Explain(value, restriction...)
	if err != nil {
		return nil, err
	}
	out := make([]models.Diagnosis, 0, len(diagnoses))
	for _, d := range diagnoses {
		md := models.Diagnosis{Scheme: d.Scheme.String(), Valid: d.Valid}
		for _, is := range d.Issues {
			md.Issues = append(md.Issues, models.Issue{Code: string(is.Code), Message: is.Message})
		}
		out = append(out, md)
	}
	return out, nil
}

// Schemes reports the published shape of every supported scheme in
// specificity order.
func (s *Service) Schemes(_ context.Context) []secid.Info {
	return s.api.Registry().DescribeAll()
}

func (s *Service) recordValidation(id *secid.ID) {
	if s.metrics == nil {
		return
	}
	result := "valid"
	if !id.Valid() {
		result = "invalid"
	}
	scheme := id.Scheme().String()
	s.metrics.ValidationsTotal.WithLabelValues(scheme, result).Inc()
	for _, is := range id.Issues() {
		s.metrics.IssuesTotal.WithLabelValues(scheme, string(is.Code)).Inc()
	}
}

// parseSchemes converts scheme names from a request into symbols, failing on
// the first unknown name.
func parseSchemes(names []string) ([]secid.Scheme, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]secid.Scheme, 0, len(names))
	for _, name := range names {
		sc, err := secid.ParseScheme(name)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
