// Package atoi converts decimal integer literals to fixed-width integers
// reporting overflow instead of silently truncating.
// Inputs are expected to be plain decimal digits with an optional leading
// minus sign; anything else is reported as overflow.
package atoi

// I8 parses s as int8.
func I8[S ~[]byte | ~string](s S) (v int8, overflow bool) {
	x, overflow := signed(s, 8)
	return int8(x), overflow
}

// I16 parses s as int16.
func I16[S ~[]byte | ~string](s S) (v int16, overflow bool) {
	x, overflow := signed(s, 16)
	return int16(x), overflow
}

// I32 parses s as int32.
func I32[S ~[]byte | ~string](s S) (v int32, overflow bool) {
	x, overflow := signed(s, 32)
	return int32(x), overflow
}

// I64 parses s as int64.
func I64[S ~[]byte | ~string](s S) (v int64, overflow bool) {
	return signed(s, 64)
}

// U32 parses s as uint32. A leading minus sign is reported as overflow.
func U32[S ~[]byte | ~string](s S) (v uint32, overflow bool) {
	x, overflow := digits(s, 1<<32-1)
	return uint32(x), overflow
}

func signed[S ~[]byte | ~string](s S, bits uint) (int64, bool) {
	max := uint64(1)<<(bits-1) - 1
	if len(s) > 0 && s[0] == '-' {
		u, overflow := digits(s[1:], max+1)
		if overflow {
			return 0, true
		}
		return -int64(u), false
	}
	u, overflow := digits(s, max)
	if overflow {
		return 0, true
	}
	return int64(u), false
}

func digits[S ~[]byte | ~string](s S, max uint64) (uint64, bool) {
	if len(s) == 0 {
		return 0, true
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, true
		}
		d := uint64(c - '0')
		if v > (max-d)/10 {
			return 0, true
		}
		v = v*10 + d
	}
	return v, false
}
