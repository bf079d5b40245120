package atoi_test

import (
	"math"
	"testing"

	"github.com/romshark/jsonnav/internal/atoi"

	"github.com/stretchr/testify/require"
)

func TestI8(t *testing.T) {
	for _, td := range []struct {
		In       string
		Expect   int8
		Overflow bool
	}{
		{In: "0", Expect: 0},
		{In: "-0", Expect: 0},
		{In: "127", Expect: math.MaxInt8},
		{In: "-128", Expect: math.MinInt8},
		{In: "128", Overflow: true},
		{In: "-129", Overflow: true},
		{In: "", Overflow: true},
		{In: "-", Overflow: true},
		{In: "1x", Overflow: true},
	} {
		t.Run(td.In, func(t *testing.T) {
			v, overflow := atoi.I8(td.In)
			require.Equal(t, td.Overflow, overflow)
			if !td.Overflow {
				require.Equal(t, td.Expect, v)
			}
		})
	}
}

func TestI64(t *testing.T) {
	v, overflow := atoi.I64("9223372036854775807")
	require.False(t, overflow)
	require.Equal(t, int64(math.MaxInt64), v)

	v, overflow = atoi.I64([]byte("-9223372036854775808"))
	require.False(t, overflow)
	require.Equal(t, int64(math.MinInt64), v)

	_, overflow = atoi.I64("9223372036854775808")
	require.True(t, overflow)
	_, overflow = atoi.I64("-9223372036854775809")
	require.True(t, overflow)
	_, overflow = atoi.I64("111111111111111111111")
	require.True(t, overflow)
}

func TestI16I32(t *testing.T) {
	v16, overflow := atoi.I16("-32768")
	require.False(t, overflow)
	require.Equal(t, int16(math.MinInt16), v16)
	_, overflow = atoi.I16("32768")
	require.True(t, overflow)

	v32, overflow := atoi.I32("2147483647")
	require.False(t, overflow)
	require.Equal(t, int32(math.MaxInt32), v32)
	_, overflow = atoi.I32("-2147483649")
	require.True(t, overflow)
}

func TestU32(t *testing.T) {
	v, overflow := atoi.U32("4294967295")
	require.False(t, overflow)
	require.Equal(t, uint32(math.MaxUint32), v)

	_, overflow = atoi.U32("4294967296")
	require.True(t, overflow)
	_, overflow = atoi.U32("-1")
	require.True(t, overflow)
}
