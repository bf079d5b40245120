// Package unescape scans and unescapes the contents of JSON string literals.
package unescape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	ErrUnterminated  = errors.New("unterminated string")
	ErrInvalidEscape = errors.New("invalid escape sequence")
	ErrControlChar   = errors.New("control character in string")
)

// Scan reads the contents of a string literal starting right after the
// opening quote and returns the index of the closing quote in s.
// escaped reports whether a backslash occurred. On error end is the
// index at which the problem was detected.
func Scan(s []byte) (end int, escaped bool, err error) {
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			return i, escaped, nil
		case c == '\\':
			escaped = true
			if i+1 >= len(s) {
				return i, escaped, ErrUnterminated
			}
			switch s[i+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if i+6 > len(s) {
					return i, escaped, ErrInvalidEscape
				}
				for _, h := range s[i+2 : i+6] {
					if hexValue(h) < 0 {
						return i, escaped, ErrInvalidEscape
					}
				}
				i += 6
			default:
				return i, escaped, ErrInvalidEscape
			}
		case c < 0x20:
			return i, escaped, ErrControlChar
		default:
			i++
		}
	}
	return len(s), escaped, ErrUnterminated
}

// Append appends the unescaped contents of s (without surrounding quotes)
// to dst. Invalid surrogate pairs decode to utf8.RuneError the way
// encoding/json does.
func Append(dst, s []byte) ([]byte, error) {
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			start := i
			for i < len(s) && s[i] != '\\' {
				i++
			}
			dst = append(dst, s[start:i]...)
			continue
		}
		if i+1 >= len(s) {
			return dst, ErrInvalidEscape
		}
		switch s[i+1] {
		case '"':
			dst = append(dst, '"')
		case '\\':
			dst = append(dst, '\\')
		case '/':
			dst = append(dst, '/')
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			r, ok := hex4(s[i+2:])
			if !ok {
				return dst, ErrInvalidEscape
			}
			i += 6
			if utf16.IsSurrogate(r) {
				r2, ok := rune(-1), false
				if i+6 <= len(s) && s[i] == '\\' && s[i+1] == 'u' {
					r2, ok = hex4(s[i+2:])
				}
				if ok {
					if d := utf16.DecodeRune(r, r2); d != utf8.RuneError {
						dst = utf8.AppendRune(dst, d)
						i += 6
						continue
					}
				}
				r = utf8.RuneError
			}
			dst = utf8.AppendRune(dst, r)
			continue
		default:
			return dst, ErrInvalidEscape
		}
		i += 2
	}
	return dst, nil
}

func hex4(s []byte) (rune, bool) {
	if len(s) < 4 {
		return 0, false
	}
	var r rune
	for _, c := range s[:4] {
		v := hexValue(c)
		if v < 0 {
			return 0, false
		}
		r = r<<4 | rune(v)
	}
	return r, true
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
