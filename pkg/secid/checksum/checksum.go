// Package checksum implements the check-digit arithmetic shared by the
// identifier schemes. Every function is pure: no allocation of shared state,
// no panics on any input that already passed a scheme's length and character
// checks.
package checksum

// Value maps an identifier character to its numeric value: digits map to
// themselves, letters to 10..35, and the CUSIP extension characters to
// 36..38. Returns -1 for anything else.
func Value(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	case c == '*':
		return 36
	case c == '@':
		return 37
	case c == '#':
		return 38
	}
	return -1
}

// Values maps every character of s through Value. The second return is false
// when s contains a character outside the supported alphabet.
func Values(s string) ([]int, bool) {
	vals := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		v := Value(s[i])
		if v < 0 {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// LuhnExpanded computes a mod-10 check digit over the expanded digit stream
// of the payload values. Each value is first flattened into its decimal
// digits (30 becomes 3,0), then every second digit is doubled walking from
// the right end of the expanded stream. Parity is taken over the expanded
// stream, not the original characters; a letter contributes two digits and
// shifts the parity of everything to its left. This is the ISIN algorithm.
func LuhnExpanded(vals []int) int {
	digits := make([]int, 0, len(vals)*2)
	for _, v := range vals {
		if v >= 10 {
			digits = append(digits, v/10, v%10)
		} else {
			digits = append(digits, v)
		}
	}
	sum := 0
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// PositionDoubled computes a mod-10 check digit by doubling the value of
// every even 1-indexed character position and summing the decimal digits of
// each (possibly two-digit) product. Unlike LuhnExpanded, parity follows the
// original character positions. This is the CUSIP algorithm; FIGI and CEI
// use it with narrower alphabets.
func PositionDoubled(vals []int) int {
	sum := 0
	for i, v := range vals {
		if (i+1)%2 == 0 {
			v *= 2
		}
		sum += v/10 + v%10
	}
	return (10 - sum%10) % 10
}

// Weighted computes a mod-10 check digit from a per-position weight table.
// weights must be at least as long as vals. This is the SEDOL algorithm
// (weights 1,3,1,7,3,9).
func Weighted(vals, weights []int) int {
	sum := 0
	for i, v := range vals {
		sum += v * weights[i]
	}
	return (10 - sum%10) % 10
}

// Mod97 computes the ISO 7064 mod-97-10 remainder of s, where letters expand
// to their two-digit values (A=10..Z=35). The numeral can be far longer than
// any machine word, so the modulus is folded in character by character
// instead of building a big integer. Returns -1 if s contains a character
// outside [0-9A-Z]. An identifier is self-consistent when the remainder of
// its (rearranged, for IBAN) body is exactly 1.
func Mod97(s string) int {
	acc := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			acc = (acc*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			acc = (acc*100 + int(c-'A') + 10) % 97
		default:
			return -1
		}
	}
	return acc
}
