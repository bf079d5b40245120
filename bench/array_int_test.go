package bench_test

import (
	"encoding/json"
	"runtime"
	"strconv"
	"testing"

	jsonv2 "github.com/go-json-experiment/json"
	goccy "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	jscan "github.com/romshark/jscan/v2"
	segmentio "github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"

	"github.com/romshark/jsonnav"
	"github.com/romshark/jsonnav/bench"
)

func intArray(n int) ([]byte, []int) {
	in := []byte{'['}
	expect := make([]int, n)
	for i := range expect {
		if i > 0 {
			in = append(in, ',')
		}
		expect[i] = (i * 7919) % 30000
		in = strconv.AppendInt(in, int64(expect[i]), 10)
	}
	return append(in, ']'), expect
}

var uniformOptions = &jsonnav.WriteOptions{UniformArrays: true}

func TestImplementationsArrayInt(t *testing.T) {
	in, expect := intArray(1024)

	t.Run("std", func(t *testing.T) {
		var v []int
		require.NoError(t, json.Unmarshal(in, &v))
		require.Equal(t, expect, v)
	})

	t.Run("jsoniter", func(t *testing.T) {
		var v []int
		require.NoError(t, jsoniter.Unmarshal(in, &v))
		require.Equal(t, expect, v)
	})

	t.Run("goccy", func(t *testing.T) {
		var v []int
		require.NoError(t, goccy.Unmarshal(in, &v))
		require.Equal(t, expect, v)
	})

	t.Run("jsonv2", func(t *testing.T) {
		var v []int
		require.NoError(t, jsonv2.Unmarshal(in, &v))
		require.Equal(t, expect, v)
	})

	t.Run("segmentio", func(t *testing.T) {
		var v []int
		require.NoError(t, segmentio.Unmarshal(in, &v))
		require.Equal(t, expect, v)
	})

	t.Run("gjson", func(t *testing.T) {
		v, err := bench.GJSONIntSlice(in)
		require.NoError(t, err)
		require.Equal(t, expect, v)
	})

	t.Run("fastjson", func(t *testing.T) {
		v, err := bench.FastjsonIntSlice(in)
		require.NoError(t, err)
		require.Equal(t, expect, v)
	})

	t.Run("jscan", func(t *testing.T) {
		v, err := bench.JscanIntSlice(jscan.NewTokenizer[[]byte](8, len(in)/2), in)
		require.NoError(t, err)
		require.Equal(t, expect, v)
	})

	for _, f := range []struct {
		name string
		in   []byte
	}{
		{"jsonnav/text", in},
		{"jsonnav/binary", toBinary(t, in, nil)},
		{"jsonnav/binary_uniform", toBinary(t, in, uniformOptions)},
	} {
		t.Run(f.name+"/navigator", func(t *testing.T) {
			nav, err := jsonnav.NewNavigator(f.in, nil)
			require.NoError(t, err)
			v, err := bench.NavigatorIntSlice(nav)
			require.NoError(t, err)
			require.Equal(t, expect, v)
		})
		t.Run(f.name+"/reader", func(t *testing.T) {
			r, err := jsonnav.NewReader(f.in, nil)
			require.NoError(t, err)
			v, err := bench.ReaderIntSlice(r)
			require.NoError(t, err)
			require.Equal(t, expect, v)
		})
	}
}

func TestUniformArraySize(t *testing.T) {
	in, _ := intArray(1024)
	plain := toBinary(t, in, nil)
	uniform := toBinary(t, in, uniformOptions)
	// Every item takes two bytes instead of three.
	require.Less(t, len(uniform), len(plain)*3/4)
}

func BenchmarkDecodeArrayInt(b *testing.B) {
	in, _ := intArray(1024)

	b.Run("std", func(b *testing.B) {
		var v []int
		for n := 0; n < b.N; n++ {
			if err := json.Unmarshal(in, &v); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("jsoniter", func(b *testing.B) {
		var v []int
		for n := 0; n < b.N; n++ {
			if err := jsoniter.Unmarshal(in, &v); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("goccy", func(b *testing.B) {
		var v []int
		for n := 0; n < b.N; n++ {
			if err := goccy.Unmarshal(in, &v); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("jsonv2", func(b *testing.B) {
		var v []int
		for n := 0; n < b.N; n++ {
			if err := jsonv2.Unmarshal(in, &v); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("segmentio", func(b *testing.B) {
		var v []int
		for n := 0; n < b.N; n++ {
			if err := segmentio.Unmarshal(in, &v); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("gjson", func(b *testing.B) {
		var v []int
		var err error
		for n := 0; n < b.N; n++ {
			if v, err = bench.GJSONIntSlice(in); err != nil {
				b.Fatal(err)
			}
		}
		runtime.KeepAlive(v)
	})

	b.Run("fastjson", func(b *testing.B) {
		var v []int
		var err error
		for n := 0; n < b.N; n++ {
			if v, err = bench.FastjsonIntSlice(in); err != nil {
				b.Fatal(err)
			}
		}
		runtime.KeepAlive(v)
	})

	b.Run("jscan", func(b *testing.B) {
		tokenizer := jscan.NewTokenizer[[]byte](8, len(in)/2)
		var v []int
		var err error
		b.ResetTimer()
		for n := 0; n < b.N; n++ {
			if v, err = bench.JscanIntSlice(tokenizer, in); err != nil {
				b.Fatal(err)
			}
		}
		runtime.KeepAlive(v)
	})

	for _, f := range []struct {
		name string
		in   []byte
	}{
		{"jsonnav/text", in},
		{"jsonnav/binary", toBinary(b, in, nil)},
		{"jsonnav/binary_uniform", toBinary(b, in, uniformOptions)},
	} {
		b.Run(f.name, func(b *testing.B) {
			var v []int
			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				nav, err := jsonnav.NewNavigator(f.in, nil)
				if err != nil {
					b.Fatal(err)
				}
				if v, err = bench.NavigatorIntSlice(nav); err != nil {
					b.Fatal(err)
				}
			}
			runtime.KeepAlive(v)
		})
	}
}
