package secid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustParseAs builds an ID under one scheme using a fresh API.
func mustParseAs(t *testing.T, scheme Scheme, raw string) *ID {
	t.Helper()
	id, err := New().ParseAs(scheme, raw)
	require.NoError(t, err)
	return id
}

func assertValid(t *testing.T, scheme Scheme, raw string) *ID {
	t.Helper()
	id := mustParseAs(t, scheme, raw)
	require.Truef(t, id.Valid(), "%s %q expected valid, got issues %v", scheme, raw, id.Issues())
	return id
}

func assertIssue(t *testing.T, scheme Scheme, raw string, code IssueCode) {
	t.Helper()
	id := mustParseAs(t, scheme, raw)
	require.Falsef(t, id.Valid(), "%s %q expected invalid", scheme, raw)
	require.Len(t, id.Issues(), 1, "exactly one structural class per validation")
	assert.Equal(t, code, id.Issues()[0].Code)
}

func TestISIN(t *testing.T) {
	assertValid(t, SchemeISIN, "US5949181045")
	assertValid(t, SchemeISIN, "AU0000XVGZA3")
	assertValid(t, SchemeISIN, "DE000BASF111")

	t.Run("separators and case are cleaned", func(t *testing.T) {
		id := assertValid(t, SchemeISIN, "  us5949-1810-45 ")
		assert.Equal(t, "US5949181045", id.Body())
	})

	assertIssue(t, SchemeISIN, "US5949181040", IssueInvalidCheckDigit)
	assertIssue(t, SchemeISIN, "US594918", IssueInvalidLength)
	assertIssue(t, SchemeISIN, "", IssueInvalidLength)
	assertIssue(t, SchemeISIN, "US59491810#5", IssueInvalidCharacters)

	t.Run("parts", func(t *testing.T) {
		id := assertValid(t, SchemeISIN, "US5949181045")
		assert.Equal(t, []Part{
			{Name: "country", Value: "US"},
			{Name: "nsin", Value: "594918104"},
			{Name: "check_digit", Value: "5"},
		}, id.Parts())
		assert.Equal(t, "5", id.CheckDigit())
	})
}

func TestCUSIP(t *testing.T) {
	assertValid(t, SchemeCUSIP, "594918104")
	assertValid(t, SchemeCUSIP, "38259P508")
	assertValid(t, SchemeCUSIP, "037833100")

	assertIssue(t, SchemeCUSIP, "594918103", IssueInvalidCheckDigit)
	assertIssue(t, SchemeCUSIP, "59491810", IssueInvalidLength)
	assertIssue(t, SchemeCUSIP, "59491810x", IssueInvalidCharacters)
}

func TestSEDOL(t *testing.T) {
	assertValid(t, SchemeSEDOL, "0263494")
	assertValid(t, SchemeSEDOL, "B0YBKJ7")

	assertIssue(t, SchemeSEDOL, "0263490", IssueInvalidCheckDigit)
	assertIssue(t, SchemeSEDOL, "026349", IssueInvalidLength)
	// vowels are outside the SEDOL alphabet
	assertIssue(t, SchemeSEDOL, "A263494", IssueInvalidCharacters)
}

func TestFIGI(t *testing.T) {
	assertValid(t, SchemeFIGI, "BBG000BLNNH6")

	assertIssue(t, SchemeFIGI, "BSG000BLNNH6", IssueInvalidPrefix)
	assertIssue(t, SchemeFIGI, "BBG000BLNNH5", IssueInvalidCheckDigit)
	// third character must be G
	assertIssue(t, SchemeFIGI, "BBB000BLNNH6", IssueInvalidCharacters)
	assertIssue(t, SchemeFIGI, "BBG000BLNNH", IssueInvalidLength)
}

func TestLEI(t *testing.T) {
	assertValid(t, SchemeLEI, "HWUPKR0MPOU8FGXBT394")

	assertIssue(t, SchemeLEI, "HWUPKR0MPOU8FGXBT395", IssueInvalidCheckDigit)
	assertIssue(t, SchemeLEI, "HWUPKR0MPOU8FGXBT39", IssueInvalidLength)
	// final two characters must be digits
	assertIssue(t, SchemeLEI, "HWUPKR0MPOU8FGXBT3X4", IssueInvalidCharacters)
}

func TestIBAN(t *testing.T) {
	assertValid(t, SchemeIBAN, "GB82WEST12345698765432")
	assertValid(t, SchemeIBAN, "DE89370400440532013000")

	t.Run("print form with spaces is cleaned", func(t *testing.T) {
		id := assertValid(t, SchemeIBAN, "GB82 WEST 1234 5698 7654 32")
		assert.Equal(t, "GB82WEST12345698765432", id.Body())
	})

	t.Run("transposed digits break the mod-97 check", func(t *testing.T) {
		assertIssue(t, SchemeIBAN, "GB28WEST12345698765432", IssueInvalidCheckDigit)
	})

	t.Run("known country with wrong BBAN length", func(t *testing.T) {
		assertIssue(t, SchemeIBAN, "DE8937040044053201300", IssueInvalidBBAN)
	})

	assertIssue(t, SchemeIBAN, "GB82WEST123", IssueInvalidLength)
	assertIssue(t, SchemeIBAN, "G882WEST12345698765432", IssueInvalidCharacters)
}

func TestOCC(t *testing.T) {
	assertValid(t, SchemeOCC, "AAPL251219C00150000")
	assertValid(t, SchemeOCC, "SPX240621P04500000")

	t.Run("padded root symbol is cleaned", func(t *testing.T) {
		id := assertValid(t, SchemeOCC, "AAPL  251219C00150000")
		assert.Equal(t, "AAPL251219C00150000", id.Body())
	})

	assertIssue(t, SchemeOCC, "AAPL251319C00150000", IssueInvalidDate)
	assertIssue(t, SchemeOCC, "AAPL251219X00150000", IssueInvalidCharacters)
	assertIssue(t, SchemeOCC, "AAPL251219C0015", IssueInvalidLength)

	t.Run("parts", func(t *testing.T) {
		id := assertValid(t, SchemeOCC, "SPX240621P04500000")
		assert.Equal(t, []Part{
			{Name: "root", Value: "SPX"},
			{Name: "expiry", Value: "240621"},
			{Name: "side", Value: "P"},
			{Name: "strike", Value: "04500000"},
		}, id.Parts())
	})
}

func TestCFI(t *testing.T) {
	assertValid(t, SchemeCFI, "ESVUFR")
	assertValid(t, SchemeCFI, "OCASPS")

	assertIssue(t, SchemeCFI, "XSVUFR", IssueInvalidCategory)
	assertIssue(t, SchemeCFI, "EAVUFR", IssueInvalidGroup)
	assertIssue(t, SchemeCFI, "ESVUF", IssueInvalidLength)
	assertIssue(t, SchemeCFI, "ES1UFR", IssueInvalidCharacters)
}

func TestFISN(t *testing.T) {
	assertValid(t, SchemeFISN, "APPLE INC/SHS")

	t.Run("lowercase input is uppercased, interior spaces kept", func(t *testing.T) {
		id := assertValid(t, SchemeFISN, " apple inc/shs ")
		assert.Equal(t, "APPLE INC/SHS", id.Body())
	})

	assertIssue(t, SchemeFISN, "APPLEINCSHS", IssueInvalidCharacters)
	// issuer part longer than 15 characters
	assertIssue(t, SchemeFISN, "ABCDEFGHIJKLMNOP/SHS", IssueInvalidCharacters)
	assertIssue(t, SchemeFISN, "ABCDEFGHIJKLMNO/ABCDEFGHIJKLMNOPQRST", IssueInvalidLength)

	t.Run("parts", func(t *testing.T) {
		id := assertValid(t, SchemeFISN, "APPLE INC/SHS")
		assert.Equal(t, []Part{
			{Name: "issuer", Value: "APPLE INC"},
			{Name: "description", Value: "SHS"},
		}, id.Parts())
	})
}

func TestCEI(t *testing.T) {
	assertValid(t, SchemeCEI, "254687AB11")
	assertValid(t, SchemeCEI, "00B3C7GF86")

	assertIssue(t, SchemeCEI, "254687AB10", IssueInvalidCheckDigit)
	assertIssue(t, SchemeCEI, "254687AB1", IssueInvalidLength)
	assertIssue(t, SchemeCEI, "254687ab1x", IssueInvalidCharacters)
}

func TestWKN(t *testing.T) {
	assertValid(t, SchemeWKN, "BASF11")
	assertValid(t, SchemeWKN, "514000")
	assertValid(t, SchemeWKN, "A1EWWW")

	// I and O are excluded from the WKN alphabet
	assertIssue(t, SchemeWKN, "AB12I3", IssueInvalidCharacters)
	assertIssue(t, SchemeWKN, "51400", IssueInvalidLength)
}

func TestValoren(t *testing.T) {
	assertValid(t, SchemeValoren, "1213853")
	assertValid(t, SchemeValoren, "514000")

	assertIssue(t, SchemeValoren, "1234", IssueInvalidLength)
	assertIssue(t, SchemeValoren, "1234567890", IssueInvalidLength)
	assertIssue(t, SchemeValoren, "12A4567", IssueInvalidCharacters)
}

func TestCIK(t *testing.T) {
	assertValid(t, SchemeCIK, "320193")
	assertValid(t, SchemeCIK, "0000320193")
	assertValid(t, SchemeCIK, "1")

	assertIssue(t, SchemeCIK, "12345678901", IssueInvalidLength)
	assertIssue(t, SchemeCIK, "32019A", IssueInvalidCharacters)
}

func TestIDValueSemantics(t *testing.T) {
	t.Run("issues are deterministic across calls", func(t *testing.T) {
		id := mustParseAs(t, SchemeISIN, "US5949181040")
		assert.Equal(t, id.Issues(), id.Issues())
	})

	t.Run("same raw input builds equivalent instances", func(t *testing.T) {
		a := mustParseAs(t, SchemeISIN, " us5949181045")
		b := mustParseAs(t, SchemeISIN, " us5949181045")
		assert.Equal(t, a.Body(), b.Body())
		assert.Equal(t, a.Valid(), b.Valid())
		assert.Equal(t, a.Issues(), b.Issues())
	})

	t.Run("normalization is idempotent", func(t *testing.T) {
		id := assertValid(t, SchemeIBAN, "gb82 west 1234 5698 7654 32")
		once, err := id.Normalized()
		require.NoError(t, err)
		again := assertValid(t, SchemeIBAN, once)
		twice, err := again.Normalized()
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("round trip preserves canonical form", func(t *testing.T) {
		for scheme, canonical := range map[Scheme]string{
			SchemeISIN:  "US5949181045",
			SchemeCUSIP: "594918104",
			SchemeSEDOL: "B0YBKJ7",
			SchemeFIGI:  "BBG000BLNNH6",
			SchemeLEI:   "HWUPKR0MPOU8FGXBT394",
			SchemeIBAN:  "GB82WEST12345698765432",
		} {
			id := assertValid(t, scheme, canonical)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("normalized fails for invalid input", func(t *testing.T) {
		id := mustParseAs(t, SchemeISIN, "US5949181040")
		_, err := id.Normalized()
		require.Error(t, err)
	})
}
