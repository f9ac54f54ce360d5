package secid

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"secid-gateway/pkg/secid/checksum"
)

var (
	isinPattern    = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)
	cusipPattern   = regexp.MustCompile(`^[A-Z0-9*@#]{8}[0-9]$`)
	sedolPattern   = regexp.MustCompile(`^[B-DF-HJ-NP-TV-Z0-9]{6}[0-9]$`)
	figiPattern    = regexp.MustCompile(`^[B-DF-HJ-NP-TV-Z0-9]{2}G[B-DF-HJ-NP-TV-Z0-9]{8}[0-9]$`)
	leiPattern     = regexp.MustCompile(`^[A-Z0-9]{18}[0-9]{2}$`)
	ibanPattern    = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	occPattern     = regexp.MustCompile(`^[A-Z]{1,6}[0-9]{6}[CP][0-9]{8}$`)
	cfiPattern     = regexp.MustCompile(`^[A-Z]{6}$`)
	fisnPattern    = regexp.MustCompile(`^[A-Z0-9 .,'()+&-]{1,15}/[A-Z0-9 .,'()+&%#-]{1,19}$`)
	ceiPattern     = regexp.MustCompile(`^[A-Z0-9*@#]{9}[0-9]$`)
	wknPattern     = regexp.MustCompile(`^[A-HJ-NP-Z0-9]{6}$`)
	valorenPattern = regexp.MustCompile(`^[0-9]{5,9}$`)
	cikPattern     = regexp.MustCompile(`^[0-9]{1,10}$`)
)

// figiReservedPrefixes can never open a FIGI; they collide with country
// codes used by other numbering agencies.
var figiReservedPrefixes = map[string]struct{}{
	"BS": {}, "BM": {}, "GG": {}, "GB": {}, "GH": {}, "KY": {}, "VG": {},
}

// ibanLengths maps an ISO country code to its fixed national IBAN length.
// Countries absent from the table are only held to the generic shape; the
// mod-97 check still guards them.
var ibanLengths = map[string]int{
	"AD": 24, "AE": 23, "AL": 28, "AT": 20, "AZ": 28, "BA": 20, "BE": 16,
	"BG": 22, "BH": 22, "BR": 29, "BY": 28, "CH": 21, "CR": 22, "CY": 28,
	"CZ": 24, "DE": 22, "DK": 18, "DO": 28, "EE": 20, "EG": 29, "ES": 24,
	"FI": 18, "FO": 18, "FR": 27, "GB": 22, "GE": 22, "GI": 23, "GL": 18,
	"GR": 27, "GT": 28, "HR": 21, "HU": 28, "IE": 22, "IL": 23, "IS": 26,
	"IT": 27, "JO": 30, "KW": 30, "KZ": 20, "LB": 28, "LI": 21, "LT": 20,
	"LU": 20, "LV": 21, "MC": 27, "MD": 24, "ME": 22, "MK": 19, "MR": 27,
	"MT": 31, "MU": 30, "NL": 18, "NO": 15, "PK": 24, "PL": 28, "PT": 25,
	"QA": 29, "RO": 24, "RS": 22, "SA": 24, "SE": 24, "SI": 19, "SK": 24,
	"SM": 27, "TN": 24, "TR": 26, "UA": 29, "VA": 22, "XK": 20,
}

// cfiGroups maps each ISO 10962 category letter to its valid group letters.
var cfiGroups = map[byte]string{
	'E': "SPCFLDYM",
	'C': "IHBESFPM",
	'D': "BCWTYSEGANM",
	'R': "ASPWFDM",
	'O': "CPM",
	'F': "FCM",
	'S': "RTECFM",
	'H': "RTECFM",
	'I': "FTM",
	'J': "EFCRT",
	'K': "RTECFYM",
	'L': "LRSM",
	'T': "CTRIBDM",
	'M': "CM",
}

func figiStructural(body string) *Issue {
	prefix := body[:2]
	if _, reserved := figiReservedPrefixes[prefix]; reserved {
		return &Issue{
			Code:    IssueInvalidPrefix,
			Message: fmt.Sprintf("FIGI prefix %q is reserved", prefix),
		}
	}
	return nil
}

func ibanStructural(body string) *Issue {
	country := body[:2]
	want, known := ibanLengths[country]
	if known && len(body) != want {
		return &Issue{
			Code:    IssueInvalidBBAN,
			Message: fmt.Sprintf("IBAN for country %s must be %d characters", country, want),
		}
	}
	return nil
}

func occStructural(body string) *Issue {
	expiry := body[len(body)-15 : len(body)-9]
	if _, err := time.Parse("060102", expiry); err != nil {
		return &Issue{
			Code:    IssueInvalidDate,
			Message: fmt.Sprintf("OCC expiration date %q is not a valid YYMMDD date", expiry),
		}
	}
	return nil
}

func cfiStructural(body string) *Issue {
	category := body[0]
	groups, known := cfiGroups[category]
	if !known {
		return &Issue{
			Code:    IssueInvalidCategory,
			Message: fmt.Sprintf("CFI category %q is not an ISO 10962 category", string(category)),
		}
	}
	if !strings.ContainsRune(groups, rune(body[1])) {
		return &Issue{
			Code:    IssueInvalidGroup,
			Message: fmt.Sprintf("CFI group %q is not valid for category %q", string(body[1]), string(category)),
		}
	}
	return nil
}

// trailingDigit verifies the final character of body against the check digit
// computed over the payload by compute.
func trailingDigit(body string, compute func(vals []int) int) bool {
	payload := body[:len(body)-1]
	vals, ok := checksum.Values(payload)
	if !ok {
		return false
	}
	return int(body[len(body)-1]-'0') == compute(vals)
}

func isinVerify(body string) bool {
	return trailingDigit(body, checksum.LuhnExpanded)
}

func positionDoubledVerify(body string) bool {
	return trailingDigit(body, checksum.PositionDoubled)
}

var sedolWeights = []int{1, 3, 1, 7, 3, 9}

func sedolVerify(body string) bool {
	return trailingDigit(body, func(vals []int) int {
		return checksum.Weighted(vals, sedolWeights)
	})
}

func leiVerify(body string) bool {
	return checksum.Mod97(body) == 1
}

func ibanVerify(body string) bool {
	return checksum.Mod97(body[4:]+body[:4]) == 1
}

// newSpecs builds the descriptor table in canonical order. Called once per
// registry; the result is never mutated afterwards.
func newSpecs() []*spec {
	return []*spec{
		{
			scheme: SchemeISIN, display: "ISIN",
			minLen: 12, maxLen: 12, pattern: isinPattern, checkWidth: 1,
			verify: isinVerify,
			parts: func(body string) []Part {
				return []Part{
					{Name: "country", Value: body[:2]},
					{Name: "nsin", Value: body[2:11]},
					{Name: "check_digit", Value: body[11:]},
				}
			},
		},
		{
			scheme: SchemeCUSIP, display: "CUSIP",
			minLen: 9, maxLen: 9, pattern: cusipPattern, checkWidth: 1,
			verify: positionDoubledVerify,
			parts: func(body string) []Part {
				return []Part{
					{Name: "issuer", Value: body[:6]},
					{Name: "issue", Value: body[6:8]},
					{Name: "check_digit", Value: body[8:]},
				}
			},
		},
		{
			scheme: SchemeSEDOL, display: "SEDOL",
			minLen: 7, maxLen: 7, pattern: sedolPattern, checkWidth: 1,
			verify: sedolVerify,
			parts: func(body string) []Part {
				return []Part{
					{Name: "base", Value: body[:6]},
					{Name: "check_digit", Value: body[6:]},
				}
			},
		},
		{
			scheme: SchemeFIGI, display: "FIGI",
			minLen: 12, maxLen: 12, pattern: figiPattern, checkWidth: 1,
			structural: figiStructural,
			verify:     positionDoubledVerify,
			parts: func(body string) []Part {
				return []Part{
					{Name: "prefix", Value: body[:2]},
					{Name: "id", Value: body[3:11]},
					{Name: "check_digit", Value: body[11:]},
				}
			},
		},
		{
			scheme: SchemeLEI, display: "LEI",
			minLen: 20, maxLen: 20, pattern: leiPattern, checkWidth: 2,
			verify: leiVerify,
			parts: func(body string) []Part {
				return []Part{
					{Name: "lou", Value: body[:4]},
					{Name: "entity", Value: body[4:18]},
					{Name: "check_digits", Value: body[18:]},
				}
			},
		},
		{
			scheme: SchemeIBAN, display: "IBAN",
			minLen: 15, maxLen: 34, pattern: ibanPattern, checkWidth: 2,
			spaceGrouped: true,
			structural:   ibanStructural,
			verify:       ibanVerify,
			parts: func(body string) []Part {
				return []Part{
					{Name: "country", Value: body[:2]},
					{Name: "check_digits", Value: body[2:4]},
					{Name: "bban", Value: body[4:]},
				}
			},
		},
		{
			scheme: SchemeOCC, display: "OCC",
			minLen: 16, maxLen: 21, pattern: occPattern,
			structural: occStructural,
			parts: func(body string) []Part {
				n := len(body)
				return []Part{
					{Name: "root", Value: body[:n-15]},
					{Name: "expiry", Value: body[n-15 : n-9]},
					{Name: "side", Value: body[n-9 : n-8]},
					{Name: "strike", Value: body[n-8:]},
				}
			},
		},
		{
			scheme: SchemeCFI, display: "CFI",
			minLen: 6, maxLen: 6, pattern: cfiPattern,
			structural: cfiStructural,
			parts: func(body string) []Part {
				return []Part{
					{Name: "category", Value: body[:1]},
					{Name: "group", Value: body[1:2]},
					{Name: "attributes", Value: body[2:]},
				}
			},
		},
		{
			scheme: SchemeFISN, display: "FISN",
			minLen: 3, maxLen: 35, pattern: fisnPattern,
			keepSeparators: true,
			parts: func(body string) []Part {
				slash := strings.IndexByte(body, '/')
				return []Part{
					{Name: "issuer", Value: body[:slash]},
					{Name: "description", Value: body[slash+1:]},
				}
			},
		},
		{
			scheme: SchemeCEI, display: "CEI",
			minLen: 10, maxLen: 10, pattern: ceiPattern, checkWidth: 1,
			verify: positionDoubledVerify,
			parts: func(body string) []Part {
				return []Part{
					{Name: "entity", Value: body[:9]},
					{Name: "check_digit", Value: body[9:]},
				}
			},
		},
		{
			scheme: SchemeWKN, display: "WKN",
			minLen: 6, maxLen: 6, pattern: wknPattern,
		},
		{
			scheme: SchemeValoren, display: "Valoren",
			minLen: 5, maxLen: 9, pattern: valorenPattern,
		},
		{
			scheme: SchemeCIK, display: "CIK",
			minLen: 1, maxLen: 10, pattern: cikPattern,
		},
	}
}
