package secid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "secid-gateway/pkg/domain-errors"
)

func TestIsValid(t *testing.T) {
	api := New()

	t.Run("unrestricted", func(t *testing.T) {
		ok, err := api.IsValid("US5949181045")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = api.IsValid("INVALID")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("restriction filters out other schemes", func(t *testing.T) {
		// 514000 is a valid WKN/Valoren/CIK but not a CUSIP.
		ok, err := api.IsValid("514000", SchemeCUSIP)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = api.IsValid("594918104", SchemeCUSIP)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown scheme is a usage error", func(t *testing.T) {
		_, err := api.IsValid("514000", Scheme("cusips"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownScheme))
	})
}

func TestParseAmbiguityPolicies(t *testing.T) {
	api := New()

	t.Run("default takes the most specific candidate", func(t *testing.T) {
		id, err := api.Parse("514000")
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, SchemeWKN, id.Scheme())
	})

	t.Run("raise mode names every candidate", func(t *testing.T) {
		_, err := api.Parse("514000", FailOnAmbiguity())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAmbiguousMatch))
		assert.Contains(t, err.Error(), `"514000"`)
		assert.Contains(t, err.Error(), "wkn")
		assert.Contains(t, err.Error(), "valoren")
		assert.Contains(t, err.Error(), "cik")
	})

	t.Run("raise mode passes a sole candidate through", func(t *testing.T) {
		id, err := api.Parse("US5949181045", FailOnAmbiguity())
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, SchemeISIN, id.Scheme())
	})

	t.Run("all returns every candidate in specificity order", func(t *testing.T) {
		ids, err := api.ParseAll("514000")
		require.NoError(t, err)
		require.Len(t, ids, 3)
		assert.Equal(t, SchemeWKN, ids[0].Scheme())
		assert.Equal(t, SchemeValoren, ids[1].Scheme())
		assert.Equal(t, SchemeCIK, ids[2].Scheme())
	})

	t.Run("restriction narrows the candidate set", func(t *testing.T) {
		id, err := api.Parse("514000", WithSchemes(SchemeValoren, SchemeCIK))
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, SchemeValoren, id.Scheme())
	})
}

func TestParseNoMatch(t *testing.T) {
	api := New()

	t.Run("parse yields nil without error", func(t *testing.T) {
		for _, input := range []string{"", "   ", "INVALID"} {
			id, err := api.Parse(input)
			require.NoError(t, err)
			assert.Nilf(t, id, "input %q", input)
		}
	})

	t.Run("parse all yields an empty slice", func(t *testing.T) {
		ids, err := api.ParseAll("INVALID")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("strict variants fail with a format error", func(t *testing.T) {
		_, err := api.ParseStrict("INVALID")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidFormat))
		assert.Contains(t, err.Error(), `"INVALID"`)

		_, err = api.ParseAllStrict("INVALID", WithSchemes(SchemeISIN))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidFormat))
		assert.Contains(t, err.Error(), "isin")
	})

	t.Run("strict error quotes the trimmed input", func(t *testing.T) {
		_, err := api.ParseStrict("  nope  ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"nope"`)
	})
}

func TestExplain(t *testing.T) {
	api := New()

	t.Run("unrestricted covers every scheme", func(t *testing.T) {
		diags, err := api.Explain("US5949181045")
		require.NoError(t, err)
		require.Len(t, diags, 13)

		valid := map[Scheme]bool{}
		for _, d := range diags {
			valid[d.Scheme] = d.Valid
			if !d.Valid {
				assert.NotEmptyf(t, d.Issues, "invalid diagnosis for %s must carry issues", d.Scheme)
			}
		}
		assert.True(t, valid[SchemeISIN])
		assert.False(t, valid[SchemeCUSIP])
	})

	t.Run("restricted explain", func(t *testing.T) {
		diags, err := api.Explain("US5949181040", SchemeISIN)
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.False(t, diags[0].Valid)
		require.Len(t, diags[0].Issues, 1)
		assert.Equal(t, IssueInvalidCheckDigit, diags[0].Issues[0].Code)
	})
}

func TestPackageLevelFacade(t *testing.T) {
	assert.Equal(t, []Scheme{SchemeISIN}, Detect("US5949181045"))

	ok, err := IsValid("594918104", SchemeCUSIP)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidAs(SchemeISIN, "US5949181045")
	require.NoError(t, err)
	assert.True(t, ok)

	id, err := Parse("US5949181045")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, SchemeISIN, id.Scheme())

	matches, err := Extract("pay US5949181045 now")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	it, err := Scan("pay US5949181045 now")
	require.NoError(t, err)
	m, okNext := it.Next()
	require.True(t, okNext)
	assert.Equal(t, matches[0], m)

	diags, err := Explain("514000", SchemeWKN)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.True(t, diags[0].Valid)
}

func TestCheckTranslatesFirstIssue(t *testing.T) {
	api := New()

	cases := []struct {
		scheme Scheme
		raw    string
		code   dErrors.Code
	}{
		{SchemeISIN, "US594918", dErrors.CodeInvalidFormat},
		{SchemeISIN, "US5949181040", dErrors.CodeCheckDigit},
		{SchemeFIGI, "BSG000BLNNH6", dErrors.CodeStructural},
		{SchemeIBAN, "DE8937040044053201300", dErrors.CodeStructural},
		{SchemeOCC, "AAPL251319C00150000", dErrors.CodeStructural},
	}
	for _, tc := range cases {
		id, err := api.ParseAs(tc.scheme, tc.raw)
		require.NoError(t, err)
		err = id.Check()
		require.Errorf(t, err, "%s %q", tc.scheme, tc.raw)
		assert.Truef(t, dErrors.HasCode(err, tc.code), "%s %q: got %v", tc.scheme, tc.raw, err)
	}

	id, err := api.ParseAs(SchemeISIN, "US5949181045")
	require.NoError(t, err)
	assert.NoError(t, id.Check())

	// the message quotes what the caller wrote, not the cleaned body
	id, err = api.ParseAs(SchemeISIN, "  us594-9181-040 ")
	require.NoError(t, err)
	err = id.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"us594-9181-040"`)
	assert.NotContains(t, err.Error(), `"US5949181040"`)
}
