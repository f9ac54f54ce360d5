package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "secid-gateway/pkg/domain-errors"
)

func newTestService(opts ...Option) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, opts...)
}

func TestDetect(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("single candidate", func(t *testing.T) {
		schemes, err := svc.Detect(ctx, "US5949181045")
		require.NoError(t, err)
		assert.Equal(t, []string{"isin"}, schemes)
	})

	t.Run("multiple candidates in specificity order", func(t *testing.T) {
		schemes, err := svc.Detect(ctx, "514000")
		require.NoError(t, err)
		assert.Equal(t, []string{"wkn", "valoren", "cik"}, schemes)
	})

	t.Run("no candidates", func(t *testing.T) {
		schemes, err := svc.Detect(ctx, "not an identifier")
		require.NoError(t, err)
		assert.Empty(t, schemes)
	})
}

func TestValidate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("valid identifier reports parts", func(t *testing.T) {
		v, err := svc.Validate(ctx, "US5949181045", "isin")
		require.NoError(t, err)
		assert.True(t, v.Valid)
		assert.Equal(t, "US5949181045", v.Normalized)
		assert.Equal(t, "5", v.CheckDigit)
		require.NotEmpty(t, v.Parts)
		assert.Equal(t, "country", v.Parts[0].Name)
		assert.Equal(t, "US", v.Parts[0].Value)
	})

	t.Run("invalid identifier reports issues", func(t *testing.T) {
		v, err := svc.Validate(ctx, "US5949181040", "isin")
		require.NoError(t, err)
		assert.False(t, v.Valid)
		require.Len(t, v.Issues, 1)
		assert.Equal(t, "invalid_check_digit", v.Issues[0].Code)
		assert.Empty(t, v.Normalized)
	})

	t.Run("unknown scheme is an error", func(t *testing.T) {
		_, err := svc.Validate(ctx, "US5949181045", "ticker")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownScheme))
	})
}

func TestValidateBatch(t *testing.T) {
	svc := newTestService(WithBatchLimit(4))
	ctx := context.Background()

	t.Run("preserves input order", func(t *testing.T) {
		values := []string{"594918104", "037833100", "bogus"}
		results, err := svc.ValidateBatch(ctx, values, "cusip")
		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, r := range results {
			assert.Equal(t, values[i], r.Value)
		}
		assert.True(t, results[0].Result.Valid)
		assert.True(t, results[1].Result.Valid)
		assert.False(t, results[2].Result.Valid)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		_, err := svc.ValidateBatch(ctx, nil, "cusip")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("over limit rejected", func(t *testing.T) {
		_, err := svc.ValidateBatch(ctx, []string{"a", "b", "c", "d", "e"}, "cusip")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestParse(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("unambiguous value", func(t *testing.T) {
		v, err := svc.Parse(ctx, "de000-basf-111", nil, false)
		require.NoError(t, err)
		assert.Equal(t, "isin", v.Scheme)
		assert.Equal(t, "DE000BASF111", v.Normalized)
	})

	t.Run("ambiguous value resolves to most specific", func(t *testing.T) {
		v, err := svc.Parse(ctx, "514000", nil, false)
		require.NoError(t, err)
		assert.Equal(t, "wkn", v.Scheme)
	})

	t.Run("ambiguous value fails when requested", func(t *testing.T) {
		_, err := svc.Parse(ctx, "514000", nil, true)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAmbiguousMatch))
	})

	t.Run("restriction narrows candidates", func(t *testing.T) {
		v, err := svc.Parse(ctx, "514000", []string{"cik"}, true)
		require.NoError(t, err)
		assert.Equal(t, "cik", v.Scheme)
	})

	t.Run("no match is invalid format", func(t *testing.T) {
		_, err := svc.Parse(ctx, "???", nil, false)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidFormat))
	})
}

func TestExtract(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("finds identifiers in position order", func(t *testing.T) {
		text := "Fund holds US5949181045 and CUSIP 594918104."
		matches, err := svc.Extract(ctx, text, nil, 0)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "isin", matches[0].Scheme)
		assert.Equal(t, "US5949181045", matches[0].Value)
		assert.Equal(t, "cusip", matches[1].Scheme)
		assert.Less(t, matches[0].Offset, matches[1].Offset)
	})

	t.Run("printed IBAN groups come back as one match", func(t *testing.T) {
		matches, err := svc.Extract(ctx, "pay to DE89 3704 0044 0532 0130 00 today", nil, 0)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "iban", matches[0].Scheme)
		assert.Equal(t, "DE89370400440532013000", matches[0].Value)
	})

	t.Run("max results truncates", func(t *testing.T) {
		text := "Fund holds US5949181045 and CUSIP 594918104."
		matches, err := svc.Extract(ctx, text, nil, 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "isin", matches[0].Scheme)
	})

	t.Run("unknown restriction scheme is an error", func(t *testing.T) {
		_, err := svc.Extract(ctx, "whatever", []string{"ric"}, 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownScheme))
	})
}

func TestExplain(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	diagnoses, err := svc.Explain(ctx, "US5949181045", []string{"isin", "cusip"})
	require.NoError(t, err)
	require.Len(t, diagnoses, 2)

	assert.Equal(t, "isin", diagnoses[0].Scheme)
	assert.True(t, diagnoses[0].Valid)
	assert.Empty(t, diagnoses[0].Issues)

	assert.Equal(t, "cusip", diagnoses[1].Scheme)
	assert.False(t, diagnoses[1].Valid)
	assert.NotEmpty(t, diagnoses[1].Issues)
}

func TestSchemes(t *testing.T) {
	svc := newTestService()

	infos := svc.Schemes(context.Background())
	require.Len(t, infos, 13)
	assert.Equal(t, "isin", infos[0].Scheme.String())
	assert.Equal(t, "ISIN", infos[0].DisplayName)
	assert.Equal(t, 12, infos[0].MinLength)
	assert.True(t, infos[0].CheckDigit)
}
