// Package jsonnum scans JSON number literals.
package jsonnum

// Scan reads the JSON number at the beginning of s and returns the index
// of the first byte after it. integer is true when the literal has neither
// a fraction nor an exponent. ok is false when s doesn't begin with a
// valid number literal.
//
// Scan doesn't check what follows the literal; "01" scans as "0"
// followed by "1" and it's up to the caller to reject that.
func Scan[S ~[]byte | ~string](s S) (end int, integer, ok bool) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return 0, false, false
	}
	switch c := s[i]; {
	case c == '0':
		i++
	case c >= '1' && c <= '9':
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return 0, false, false
	}
	integer = true

	if i < len(s) && s[i] == '.' {
		integer = false
		i++
		if i >= len(s) || !isDigit(s[i]) {
			return 0, false, false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		integer = false
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || !isDigit(s[i]) {
			return 0, false, false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i, integer, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
