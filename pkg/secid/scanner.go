package secid

// Match is one identifier occurrence found in free text. Value carries the
// normalized form; Offset and Length are byte positions into the source
// text, covering the raw matched span.
type Match struct {
	Scheme Scheme `json:"scheme"`
	Value  string `json:"value"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// Scanner locates non-overlapping identifier occurrences inside arbitrary
// text by applying the detector's matching logic at each candidate offset.
type Scanner struct {
	reg *Registry
}

// NewScanner builds a scanner over reg.
func NewScanner(reg *Registry) *Scanner {
	return &Scanner{reg: reg}
}

// Scan returns a lazy iterator over the matches in text, optionally
// restricted to the given schemes. An unknown scheme fails here, before any
// scanning. Each call returns a fresh iterator positioned at the start of
// the text; a single iterator is consumed once.
func (s *Scanner) Scan(text string, schemes ...Scheme) (*Iter, error) {
	resolved, err := s.reg.resolve(schemes)
	if err != nil {
		return nil, err
	}
	return &Iter{reg: s.reg, text: text, schemes: resolved}, nil
}

// Extract materializes Scan into a slice.
func (s *Scanner) Extract(text string, schemes ...Scheme) ([]Match, error) {
	it, err := s.Scan(text, schemes...)
	if err != nil {
		return nil, err
	}
	var out []Match
	for {
		m, ok := it.Next()
		if !ok {
			return out, nil
		}
		out = append(out, m)
	}
}

// Iter walks the text left to right. At each alphanumeric start position it
// tries the widest candidate spans first: runs extended across single spaces
// for schemes printed in spaced groups, then the contiguous run with embedded
// separators, then the bare alphanumeric run. The first scheme in specificity
// order that validates a span claims it, and scanning resumes past the
// consumed span so matches never overlap. Spans nothing validates are
// skipped silently, one position at a time.
type Iter struct {
	reg     *Registry
	text    string
	schemes []Scheme
	pos     int
}

// Next returns the next match, or ok=false when the text is exhausted.
func (it *Iter) Next() (Match, bool) {
	for it.pos < len(it.text) {
		if !isAlnum(it.text[it.pos]) {
			it.pos++
			continue
		}
		start := it.pos

		ext := start
		for ext < len(it.text) && isRunByte(it.text[ext]) {
			ext++
		}
		// a candidate never ends on a separator
		for ext > start && (it.text[ext-1] == '-' || it.text[ext-1] == '/') {
			ext--
		}

		// spans crossing spaces are offered only to space-grouped schemes,
		// so a printed IBAN is found whole instead of group by group
		for _, end := range it.spacedEnds(start, ext) {
			if m, ok := it.match(start, end, true); ok {
				it.pos = start + m.Length
				return m, true
			}
		}
		if m, ok := it.match(start, ext, false); ok {
			it.pos = start + m.Length
			return m, true
		}

		plain := start
		for plain < len(it.text) && isPlainByte(it.text[plain]) {
			plain++
		}
		if plain != ext {
			if m, ok := it.match(start, plain, false); ok {
				it.pos = start + m.Length
				return m, true
			}
		}
		it.pos++
	}
	return Match{}, false
}

// maxSpacedSpan caps how far a candidate may extend across spaces. Wide
// enough for a 34-character account number printed in blocks of four.
const maxSpacedSpan = 48

// spacedEnds lists end offsets of candidate spans extending past ext across
// single spaces, widest first. Each extension appends one more space
// separated group of run bytes, trimmed of trailing separators.
func (it *Iter) spacedEnds(start, ext int) []int {
	var ends []int
	cur := ext
	for cur < len(it.text) && it.text[cur] == ' ' && cur+1 < len(it.text) && isAlnum(it.text[cur+1]) {
		g := cur + 1
		for g < len(it.text) && isRunByte(it.text[g]) {
			g++
		}
		for g > cur+1 && (it.text[g-1] == '-' || it.text[g-1] == '/') {
			g--
		}
		if g-start > maxSpacedSpan {
			break
		}
		ends = append(ends, g)
		cur = g
	}
	for i, j := 0, len(ends)-1; i < j; i, j = i+1, j-1 {
		ends[i], ends[j] = ends[j], ends[i]
	}
	return ends
}

// match validates the span against the allowed schemes in specificity order.
// Spans containing spaces are matched only against space-grouped schemes.
func (it *Iter) match(start, end int, spaced bool) (Match, bool) {
	span := it.text[start:end]
	for _, s := range it.schemes {
		sp, ok := it.reg.spec(s)
		if !ok {
			continue
		}
		if spaced && !sp.spaceGrouped {
			continue
		}
		body := sp.clean(span)
		if body == "" {
			continue
		}
		if len(sp.validate(body)) == 0 {
			return Match{Scheme: s, Value: body, Offset: start, Length: end - start}, true
		}
	}
	return Match{}, false
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// isPlainByte covers the characters that appear inside identifier bodies
// themselves, including the CUSIP extension characters.
func isPlainByte(c byte) bool {
	return isAlnum(c) || c == '*' || c == '@' || c == '#'
}

// isRunByte additionally admits the separators at least one scheme tolerates
// inside a written identifier: hyphens (ISIN, CUSIP groupings) and the FISN
// slash.
func isRunByte(c byte) bool {
	return isPlainByte(c) || c == '-' || c == '/'
}
