package jsonnav

import (
	"math"
	"strconv"

	"github.com/romshark/jsonnav/internal/atoi"
	"github.com/romshark/jsonnav/internal/jsonnum"
)

// Number is a JSON number holding either an exact int64 or a float64.
// The zero value is the integer 0.
type Number struct {
	f       float64
	i       int64
	isFloat bool
}

// NumberFromInt64 returns an integer Number.
func NumberFromInt64(v int64) Number { return Number{i: v} }

// NumberFromFloat64 returns a floating point Number.
func NumberFromFloat64(v float64) Number { return Number{f: v, isFloat: true} }

// IsInteger returns true if n holds an int64.
func (n Number) IsInteger() bool { return !n.isFloat }

// Int64 returns n as int64, truncating floats.
func (n Number) Int64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns n as float64.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// IsFinite returns false for NaN and infinities.
func (n Number) IsFinite() bool {
	return !n.isFloat || (!math.IsNaN(n.f) && !math.IsInf(n.f, 0))
}

// Equal compares numerically. An integer and a float are equal if the float
// holds exactly the integer's value.
func (n Number) Equal(o Number) bool {
	switch {
	case !n.isFloat && !o.isFloat:
		return n.i == o.i
	case n.isFloat && o.isFloat:
		return n.f == o.f || (math.IsNaN(n.f) && math.IsNaN(o.f))
	case n.isFloat:
		return floatEqualsInt(n.f, o.i)
	}
	return floatEqualsInt(o.f, n.i)
}

func floatEqualsInt(f float64, i int64) bool {
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return false
	}
	return int64(f) == i
}

// exactInt64 returns n as int64 if it's an integer or a float that
// represents an integer exactly. Negative zero isn't exact.
func (n Number) exactInt64() (int64, bool) {
	if !n.isFloat {
		return n.i, true
	}
	if n.f == 0 && math.Signbit(n.f) {
		return 0, false
	}
	if n.f != math.Trunc(n.f) || n.f < -(1<<63) || n.f >= 1<<63 {
		return 0, false
	}
	return int64(n.f), true
}

// String returns the JSON text representation of n.
func (n Number) String() string { return string(n.AppendText(nil)) }

// AppendText appends the JSON text representation of n to dst.
// Non-finite floats are appended as Go formats them, which is not valid JSON.
func (n Number) AppendText(dst []byte) []byte {
	if !n.isFloat {
		return strconv.AppendInt(dst, n.i, 10)
	}
	return strconv.AppendFloat(dst, n.f, 'g', -1, 64)
}

// ParseNumber parses a JSON number literal. Integer literals that fit
// int64 yield integer numbers, everything else is parsed as float64.
// Literals exceeding the float64 range yield infinities.
func ParseNumber(s []byte) (Number, error) {
	end, integer, ok := jsonnum.Scan(s)
	if !ok || end != len(s) {
		return Number{}, ErrInvalidNumber
	}
	if integer {
		if v, overflow := atoi.I64(s); !overflow {
			return NumberFromInt64(v), nil
		}
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return Number{}, ErrInvalidNumber
		}
	}
	return NumberFromFloat64(f), nil
}
