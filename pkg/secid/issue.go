package secid

// IssueCode identifies one class of validation failure. The pipeline reports
// exactly one structural class per identifier, so an issue list never mixes,
// say, a length problem with a check-digit problem.
type IssueCode string

const (
	IssueInvalidLength     IssueCode = "invalid_length"
	IssueInvalidCharacters IssueCode = "invalid_characters"
	IssueInvalidPrefix     IssueCode = "invalid_prefix"
	IssueInvalidCategory   IssueCode = "invalid_category"
	IssueInvalidGroup      IssueCode = "invalid_group"
	IssueInvalidBBAN       IssueCode = "invalid_bban"
	IssueInvalidDate       IssueCode = "invalid_date"
	IssueInvalidCheckDigit IssueCode = "invalid_check_digit"
)

// Issue is one structured validation finding.
type Issue struct {
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

// dedupe drops issues whose code already appeared, preserving order.
func dedupe(issues []Issue) []Issue {
	if len(issues) < 2 {
		return issues
	}
	seen := make(map[IssueCode]struct{}, len(issues))
	out := issues[:0]
	for _, is := range issues {
		if _, ok := seen[is.Code]; ok {
			continue
		}
		seen[is.Code] = struct{}{}
		out = append(out, is)
	}
	return out
}
