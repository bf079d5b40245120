package jsonnav_test

import (
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/romshark/jsonnav"
)

const lookupInput = `{
	"user": {"id": "u-1", "roles": ["admin", "dev"], "age": 42},
	"items": [{"sku": "a", "qty": 1}, {"sku": "b", "qty": 2.5}],
	"matrix": [[100,200,300,400],[500,600,700,800]],
	"dup": 1, "dup": 2,
	"empty": {}
}`

func TestMaterialize(t *testing.T) {
	for _, in := range roundtripInputs {
		if in.name == "duplicate_names" {
			// encoding/json keeps the last duplicate, Materialize the first.
			continue
		}
		forEachNavigator(t, in.input, func(t *testing.T, nav jsonnav.Navigator) {
			v, err := jsonnav.Materialize(nav, nav.Root())
			require.NoError(t, err)
			b, err := json.Marshal(v)
			require.NoError(t, err)
			require.JSONEq(t, in.input, string(b))
		})
	}
}

func TestMaterializeTypes(t *testing.T) {
	const input = `{"n":[1,-2.5,null,true,false],"dup":"first","dup":"second",` +
		`"typed":[I-1,H2,L3,Q4,U5,S0.5,D0.25,G0f8fad5b-d9cb-469f-98a7-ae23b2b2b0f3,BQUJD]}`
	forEachNavigator(t, input, func(t *testing.T, nav jsonnav.Navigator) {
		v, err := jsonnav.Materialize(nav, nav.Root())
		require.NoError(t, err)
		require.Equal(t, map[string]any{
			"n":   []any{int64(1), -2.5, nil, true, false},
			"dup": "first",
			"typed": []any{
				int8(-1), int16(2), int32(3), int64(4), uint32(5),
				float32(0.5), 0.25,
				uuid.MustParse("0f8fad5b-d9cb-469f-98a7-ae23b2b2b0f3"),
				[]byte("ABC"),
			},
		}, v)
	})
}

func TestMaterializeNesting(t *testing.T) {
	// nested wraps 0 in depth arrays with a 4 byte length prefix,
	// which is accepted without walking the children.
	nested := func(depth int) []byte {
		v := []byte{0x00}
		for i := 0; i < depth; i++ {
			b := binary.LittleEndian.AppendUint32([]byte{0xE4}, uint32(len(v)))
			v = append(b, v...)
		}
		return append([]byte{jsonnav.BinaryFormatMarker}, v...)
	}

	nav, err := jsonnav.NewBinaryNavigator(nested(jsonnav.MaxNestingDepth), nil)
	require.NoError(t, err)
	_, err = jsonnav.Materialize(nav, nav.Root())
	require.NoError(t, err)

	nav, err = jsonnav.NewBinaryNavigator(nested(jsonnav.MaxNestingDepth+1), nil)
	require.NoError(t, err)
	_, err = jsonnav.Materialize(nav, nav.Root())
	require.ErrorIs(t, err, jsonnav.ErrMaxNestingExceeded)
}

func TestLookup(t *testing.T) {
	for _, path := range []string{
		"user",
		"user.id",
		"user.roles.1",
		"user.age",
		"items.0.sku",
		"items.1.qty",
		"matrix.1",
		"matrix.1.2",
		"dup",
		"empty",
	} {
		t.Run(path, func(t *testing.T) {
			expect := gjson.Get(lookupInput, path)
			require.True(t, expect.Exists())

			forEachNavigator(t, lookupInput, func(t *testing.T, nav jsonnav.Navigator) {
				n, ok, err := jsonnav.Lookup(nav, nav.Root(), strings.Split(path, ".")...)
				require.NoError(t, err)
				require.True(t, ok)

				w := jsonnav.NewTextWriter()
				require.NoError(t, nav.WriteNode(n, w))
				b, err := w.Result()
				require.NoError(t, err)
				require.JSONEq(t, expect.Raw, string(b))
			})
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	for _, path := range []string{
		"missing",
		"user.roles.2",
		"user.roles.-1",
		"user.roles.x",
		"user.id.deeper",
		"matrix.0.4",
		"empty.x",
	} {
		t.Run(path, func(t *testing.T) {
			require.False(t, gjson.Get(lookupInput, path).Exists())

			forEachNavigator(t, lookupInput, func(t *testing.T, nav jsonnav.Navigator) {
				n, ok, err := jsonnav.Lookup(nav, nav.Root(), strings.Split(path, ".")...)
				require.NoError(t, err)
				require.False(t, ok)
				require.Nil(t, n)
			})
		})
	}
}

func TestLookupEmptyPath(t *testing.T) {
	nav, err := jsonnav.NewTextNavigator([]byte(`[1]`))
	require.NoError(t, err)
	n, ok, err := jsonnav.Lookup(nav, nav.Root())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, nav.Root(), n)
}
