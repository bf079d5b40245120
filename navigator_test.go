package jsonnav_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romshark/jsonnav"
)

// forEachNavigator runs fn with a text navigator over input and
// with a binary navigator for each set of roundtripOptions.
func forEachNavigator(
	t *testing.T, input string, fn func(t *testing.T, nav jsonnav.Navigator),
) {
	t.Helper()
	t.Run("text", func(t *testing.T) {
		nav, err := jsonnav.NewNavigator([]byte(input), nil)
		require.NoError(t, err)
		require.Equal(t, jsonnav.FormatText, nav.Format())
		fn(t, nav)
	})
	for _, o := range roundtripOptions {
		t.Run("binary_"+o.name, func(t *testing.T) {
			options := o.options()
			bin := toBinary(t, input, options)
			nav, err := jsonnav.NewNavigator(bin, &jsonnav.ReadOptions{
				Dictionary: options.Dictionary,
			})
			require.NoError(t, err)
			require.Equal(t, jsonnav.FormatBinary, nav.Format())
			fn(t, nav)
		})
	}
}

// rootIndex returns the index errors on the root node are reported at.
func rootIndex(nav jsonnav.Navigator) int {
	if nav.Format() == jsonnav.FormatBinary {
		return 1
	}
	return 0
}

func requireNodeType(
	t *testing.T, nav jsonnav.Navigator, n jsonnav.Node, expect jsonnav.NodeType,
) {
	t.Helper()
	nt, err := nav.NodeType(n)
	require.NoError(t, err)
	require.Equal(t, expect, nt)
}

func property(t *testing.T, nav jsonnav.Navigator, n jsonnav.Node, name string) jsonnav.Node {
	t.Helper()
	p, ok, err := nav.TryGetObjectProperty(n, name)
	require.NoError(t, err)
	require.True(t, ok, "property %q not found", name)
	return p.Value
}

func item(t *testing.T, nav jsonnav.Navigator, n jsonnav.Node, index int) jsonnav.Node {
	t.Helper()
	v, err := nav.ArrayItemAt(n, index)
	require.NoError(t, err)
	return v
}

func TestNavigatorScenario(t *testing.T) {
	const input = `{"id":"abc","count":5,"tags":["x","y"]}`
	forEachNavigator(t, input, func(t *testing.T, nav jsonnav.Navigator) {
		root := nav.Root()
		requireNodeType(t, nav, root, jsonnav.NodeTypeObject)

		c, err := nav.ObjectPropertyCount(root)
		require.NoError(t, err)
		require.Equal(t, 3, c)

		tags := property(t, nav, root, "tags")
		c, err = nav.ArrayItemCount(tags)
		require.NoError(t, err)
		require.Equal(t, 2, c)

		id, err := nav.StringValue(property(t, nav, root, "id"))
		require.NoError(t, err)
		require.Equal(t, "abc", id)

		count, err := nav.NumberValue(property(t, nav, root, "count"))
		require.NoError(t, err)
		require.Equal(t, int64(5), count.Int64())

		y, err := nav.StringValue(item(t, nav, tags, 1))
		require.NoError(t, err)
		require.Equal(t, "y", y)

		_, ok, err := nav.TryGetObjectProperty(root, "missing")
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestNavigatorDuplicateNames(t *testing.T) {
	forEachNavigator(t, `{"a":1,"a":2}`, func(t *testing.T, nav jsonnav.Navigator) {
		c, err := nav.ObjectPropertyCount(nav.Root())
		require.NoError(t, err)
		require.Equal(t, 2, c)

		v, err := nav.NumberValue(property(t, nav, nav.Root(), "a"))
		require.NoError(t, err)
		require.Equal(t, int64(1), v.Int64())

		props, err := nav.ObjectProperties(nav.Root())
		require.NoError(t, err)
		require.Len(t, props, 2)
		v, err = nav.NumberValue(props[1].Value)
		require.NoError(t, err)
		require.Equal(t, int64(2), v.Int64())
	})
}

func TestNavigatorArray(t *testing.T) {
	const input = `[1,"x",null,true,false,[],{"k":-2.5}]`
	forEachNavigator(t, input, func(t *testing.T, nav jsonnav.Navigator) {
		root := nav.Root()
		c, err := nav.ArrayItemCount(root)
		require.NoError(t, err)
		require.Equal(t, 7, c)

		items, err := nav.ArrayItems(root)
		require.NoError(t, err)
		require.Len(t, items, 7)

		expect := []jsonnav.NodeType{
			jsonnav.NodeTypeNumber,
			jsonnav.NodeTypeString,
			jsonnav.NodeTypeNull,
			jsonnav.NodeTypeTrue,
			jsonnav.NodeTypeFalse,
			jsonnav.NodeTypeArray,
			jsonnav.NodeTypeObject,
		}
		for i, e := range expect {
			requireNodeType(t, nav, items[i], e)
			requireNodeType(t, nav, item(t, nav, root, i), e)
		}

		c, err = nav.ArrayItemCount(items[5])
		require.NoError(t, err)
		require.Zero(t, c)

		k, err := nav.NumberValue(property(t, nav, items[6], "k"))
		require.NoError(t, err)
		require.False(t, k.IsInteger())
		require.Equal(t, -2.5, k.Float64())

		_, err = nav.ArrayItemAt(root, 7)
		requireErrAt(t, err, jsonnav.ErrIndexOutOfRange, rootIndex(nav))
		_, err = nav.ArrayItemAt(root, -1)
		requireErrAt(t, err, jsonnav.ErrIndexOutOfRange, rootIndex(nav))
	})
}

func TestNavigatorObjectProperties(t *testing.T) {
	const input = `{"name":"x","esc\naped":[],"":{}}`
	forEachNavigator(t, input, func(t *testing.T, nav jsonnav.Navigator) {
		props, err := nav.ObjectProperties(nav.Root())
		require.NoError(t, err)
		require.Len(t, props, 3)

		var names []string
		for _, p := range props {
			requireNodeType(t, nav, p.Name, jsonnav.NodeTypeFieldName)
			s, err := nav.StringValue(p.Name)
			require.NoError(t, err)
			names = append(names, s)
		}
		require.Equal(t, []string{"name", "esc\naped", ""}, names)

		requireNodeType(t, nav, property(t, nav, nav.Root(), "esc\naped"), jsonnav.NodeTypeArray)
		requireNodeType(t, nav, property(t, nav, nav.Root(), ""), jsonnav.NodeTypeObject)
	})
}

func TestNavigatorTypedValues(t *testing.T) {
	const input = `[I-8,H16,L-32,Q64,U4294967295,S1.5,D-0.25,` +
		`G0f8fad5b-d9cb-469f-98a7-ae23b2b2b0f3,BQUJD]`
	forEachNavigator(t, input, func(t *testing.T, nav jsonnav.Navigator) {
		items, err := nav.ArrayItems(nav.Root())
		require.NoError(t, err)
		require.Len(t, items, 9)

		i8, err := nav.Int8Value(items[0])
		require.NoError(t, err)
		require.Equal(t, int8(-8), i8)
		i16, err := nav.Int16Value(items[1])
		require.NoError(t, err)
		require.Equal(t, int16(16), i16)
		i32, err := nav.Int32Value(items[2])
		require.NoError(t, err)
		require.Equal(t, int32(-32), i32)
		i64, err := nav.Int64Value(items[3])
		require.NoError(t, err)
		require.Equal(t, int64(64), i64)
		u32, err := nav.UInt32Value(items[4])
		require.NoError(t, err)
		require.Equal(t, uint32(4294967295), u32)
		f32, err := nav.Float32Value(items[5])
		require.NoError(t, err)
		require.Equal(t, float32(1.5), f32)
		f64, err := nav.Float64Value(items[6])
		require.NoError(t, err)
		require.Equal(t, -0.25, f64)
		g, err := nav.GuidValue(items[7])
		require.NoError(t, err)
		require.Equal(t, "0f8fad5b-d9cb-469f-98a7-ae23b2b2b0f3", g.String())
		b, err := nav.BinaryValue(items[8])
		require.NoError(t, err)
		require.Equal(t, []byte("ABC"), b)

		_, err = nav.Int16Value(items[0])
		require.ErrorIs(t, err, jsonnav.ErrTypeMismatch)
		_, err = nav.NumberValue(items[2])
		require.ErrorIs(t, err, jsonnav.ErrTypeMismatch)
	})
}

func TestNavigatorTypeMismatch(t *testing.T) {
	forEachNavigator(t, `"x"`, func(t *testing.T, nav jsonnav.Navigator) {
		_, err := nav.NumberValue(nav.Root())
		requireErrAt(t, err, jsonnav.ErrTypeMismatch, rootIndex(nav))
		_, err = nav.BinaryValue(nav.Root())
		requireErrAt(t, err, jsonnav.ErrTypeMismatch, rootIndex(nav))
		_, err = nav.ArrayItemCount(nav.Root())
		requireErrAt(t, err, jsonnav.ErrTypeMismatch, rootIndex(nav))
		_, _, err = nav.TryGetObjectProperty(nav.Root(), "x")
		requireErrAt(t, err, jsonnav.ErrTypeMismatch, rootIndex(nav))
	})
	forEachNavigator(t, `[1]`, func(t *testing.T, nav jsonnav.Navigator) {
		_, err := nav.StringValue(nav.Root())
		requireErrAt(t, err, jsonnav.ErrTypeMismatch, rootIndex(nav))
		_, err = nav.ObjectPropertyCount(nav.Root())
		requireErrAt(t, err, jsonnav.ErrTypeMismatch, rootIndex(nav))
		_, ok := nav.BufferedStringValue(nav.Root())
		require.False(t, ok)
	})
}

func TestNavigatorBufferedStringValue(t *testing.T) {
	for _, td := range []struct {
		name     string
		input    string
		options  *jsonnav.WriteOptions
		buffered bool
	}{
		{name: "text_plain", input: `"plain"`, buffered: true},
		{name: "text_escaped", input: `"a\tb"`},
		{
			name:     "binary_literal",
			input:    `"plain"`,
			options:  &jsonnav.WriteOptions{},
			buffered: true,
		},
		{
			name:     "binary_system",
			input:    `"id"`,
			options:  &jsonnav.WriteOptions{},
			buffered: true,
		},
		{
			name:    "binary_compressed",
			input:   `"0123456789abcdef0123456789abcdef"`,
			options: &jsonnav.WriteOptions{CompressStrings: true},
		},
	} {
		t.Run(td.name, func(t *testing.T) {
			buf := []byte(td.input)
			if td.options != nil {
				buf = toBinary(t, td.input, td.options)
			}
			nav, err := jsonnav.NewNavigator(buf, nil)
			require.NoError(t, err)

			s, err := nav.StringValue(nav.Root())
			require.NoError(t, err)
			b, ok := nav.BufferedStringValue(nav.Root())
			require.Equal(t, td.buffered, ok)
			if ok {
				require.Equal(t, s, string(b))
			}
		})
	}
}

func TestNavigatorUniformArrays(t *testing.T) {
	options := &jsonnav.WriteOptions{UniformArrays: true}

	t.Run("flat", func(t *testing.T) {
		bin := toBinary(t, `[100,200,300,400]`, options)
		require.Equal(t, byte(0xF0), bin[1], "not packed")
		nav, err := jsonnav.NewBinaryNavigator(bin, nil)
		require.NoError(t, err)

		c, err := nav.ArrayItemCount(nav.Root())
		require.NoError(t, err)
		require.Equal(t, 4, c)

		items, err := nav.ArrayItems(nav.Root())
		require.NoError(t, err)
		var values []int64
		for _, n := range items {
			requireNodeType(t, nav, n, jsonnav.NodeTypeNumber)
			v, err := nav.NumberValue(n)
			require.NoError(t, err)
			values = append(values, v.Int64())
		}
		require.Equal(t, []int64{100, 200, 300, 400}, values)

		v, err := nav.NumberValue(item(t, nav, nav.Root(), 2))
		require.NoError(t, err)
		require.Equal(t, int64(300), v.Int64())

		_, err = nav.StringValue(items[0])
		require.ErrorIs(t, err, jsonnav.ErrTypeMismatch)
		_, err = nav.ArrayItemAt(nav.Root(), 4)
		requireErrAt(t, err, jsonnav.ErrIndexOutOfRange, 1)

		r, err := nav.CreateReader(items[3])
		require.NoError(t, err)
		require.Equal(t, []string{"number 400"}, trace(t, r))
	})

	t.Run("nested", func(t *testing.T) {
		bin := toBinary(t, `[[100,200,300,400],[500,600,700,800]]`, options)
		require.Equal(t, byte(0xF2), bin[1], "not packed")
		nav, err := jsonnav.NewBinaryNavigator(bin, nil)
		require.NoError(t, err)

		c, err := nav.ArrayItemCount(nav.Root())
		require.NoError(t, err)
		require.Equal(t, 2, c)

		inner := item(t, nav, nav.Root(), 1)
		requireNodeType(t, nav, inner, jsonnav.NodeTypeArray)
		c, err = nav.ArrayItemCount(inner)
		require.NoError(t, err)
		require.Equal(t, 4, c)

		v, err := nav.NumberValue(item(t, nav, inner, 1))
		require.NoError(t, err)
		require.Equal(t, int64(600), v.Int64())

		items, err := nav.ArrayItems(inner)
		require.NoError(t, err)
		require.Len(t, items, 4)
		v, err = nav.NumberValue(items[3])
		require.NoError(t, err)
		require.Equal(t, int64(800), v.Int64())

		_, err = nav.ArrayItemAt(inner, 4)
		require.ErrorIs(t, err, jsonnav.ErrIndexOutOfRange)
		_, err = nav.ObjectPropertyCount(inner)
		require.ErrorIs(t, err, jsonnav.ErrTypeMismatch)

		r, err := nav.CreateReader(inner)
		require.NoError(t, err)
		require.Equal(t, []string{
			"[", "number 500", "number 600", "number 700", "number 800", "]",
		}, trace(t, r))

		w := jsonnav.NewTextWriter()
		require.NoError(t, nav.WriteNode(nav.Root(), w))
		text, err := w.Result()
		require.NoError(t, err)
		require.Equal(t, `[[100,200,300,400],[500,600,700,800]]`, string(text))
	})

	t.Run("typed", func(t *testing.T) {
		bin := toBinary(t, `[L1,L-2,L3]`, options)
		require.Equal(t, byte(0xF0), bin[1], "not packed")
		nav, err := jsonnav.NewBinaryNavigator(bin, nil)
		require.NoError(t, err)

		n := item(t, nav, nav.Root(), 1)
		requireNodeType(t, nav, n, jsonnav.NodeTypeInt32)
		v, err := nav.Int32Value(n)
		require.NoError(t, err)
		require.Equal(t, int32(-2), v)
	})
}

func TestNavigatorCreateReader(t *testing.T) {
	const input = `{"a":{"b":[1,"two"]},"c":null}`
	forEachNavigator(t, input, func(t *testing.T, nav jsonnav.Navigator) {
		r, err := nav.CreateReader(property(t, nav, nav.Root(), "a"))
		require.NoError(t, err)
		require.Equal(t, []string{
			"{", `fieldname "b"`, "[", "number 1", `string "two"`, "]", "}",
		}, trace(t, r))

		r, err = nav.CreateReader(property(t, nav, nav.Root(), "c"))
		require.NoError(t, err)
		require.Equal(t, []string{"null"}, trace(t, r))

		r, err = nav.CreateReader(nav.Root())
		require.NoError(t, err)
		require.Len(t, trace(t, r), 11)
	})
}

func TestNavigatorWriteNode(t *testing.T) {
	const input = `{"a":[1,"x",{"b":true}],"c":"0123456789abcdef0123456789abcdef"}`
	forEachNavigator(t, input, func(t *testing.T, nav jsonnav.Navigator) {
		t.Run("root_to_text", func(t *testing.T) {
			w := jsonnav.NewTextWriter()
			require.NoError(t, nav.WriteNode(nav.Root(), w))
			b, err := w.Result()
			require.NoError(t, err)
			require.Equal(t, input, string(b))
		})

		t.Run("property_to_text", func(t *testing.T) {
			props, err := nav.ObjectProperties(nav.Root())
			require.NoError(t, err)
			w := jsonnav.NewTextWriter()
			require.NoError(t, w.WriteArrayStart())
			require.NoError(t, w.WriteObjectStart())
			require.NoError(t, nav.WriteNode(props[0].Name, w))
			require.NoError(t, nav.WriteNode(props[0].Value, w))
			require.NoError(t, w.WriteObjectEnd())
			require.NoError(t, nav.WriteNode(props[1].Value, w))
			require.NoError(t, w.WriteArrayEnd())
			b, err := w.Result()
			require.NoError(t, err)
			require.Equal(t,
				`[{"a":[1,"x",{"b":true}]},"0123456789abcdef0123456789abcdef"]`,
				string(b))
		})

		t.Run("root_to_binary", func(t *testing.T) {
			w := jsonnav.NewBinaryWriter(nil)
			require.NoError(t, nav.WriteNode(nav.Root(), w))
			b, err := w.Result()
			require.NoError(t, err)
			require.Equal(t, input, toText(t, b, nil))
		})
	})
}

func TestNavigatorWriteNodeRaw(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		nav, err := jsonnav.NewTextNavigator([]byte(`{ "a" : [1, 2] }`))
		require.NoError(t, err)
		w := jsonnav.NewTextWriter()
		require.NoError(t, nav.WriteNode(property(t, nav, nav.Root(), "a"), w))
		b, err := w.Result()
		require.NoError(t, err)
		require.Equal(t, `[1, 2]`, string(b))
	})

	t.Run("binary", func(t *testing.T) {
		bin := toBinary(t, `{"tags":["x","y"],"n":1}`, nil)
		nav, err := jsonnav.NewBinaryNavigator(bin, nil)
		require.NoError(t, err)

		w := jsonnav.NewBinaryWriter(nil)
		require.NoError(t, w.WriteObjectStart())
		require.NoError(t, w.WriteFieldName("tags"))
		require.NoError(t, nav.WriteNode(property(t, nav, nav.Root(), "tags"), w))
		require.NoError(t, w.WriteObjectEnd())
		b, err := w.Result()
		require.NoError(t, err)
		require.Equal(t, toBinary(t, `{"tags":["x","y"]}`, nil), b)
	})

	t.Run("binary_other_dictionary", func(t *testing.T) {
		d := jsonnav.NewDictionary()
		bin := toBinary(t, `"hello world"`, &jsonnav.WriteOptions{Dictionary: d})
		require.Equal(t, []byte{0x80, 0x40}, bin)
		nav, err := jsonnav.NewBinaryNavigator(bin, &jsonnav.ReadOptions{Dictionary: d})
		require.NoError(t, err)

		w := jsonnav.NewBinaryWriter(&jsonnav.WriteOptions{})
		require.NoError(t, nav.WriteNode(nav.Root(), w))
		b, err := w.Result()
		require.NoError(t, err)
		require.Equal(t, `"hello world"`, toText(t, b, nil))
	})
}

func TestNavigatorWriteNodeUserStrings(t *testing.T) {
	d := jsonnav.NewDictionary()
	bin := toBinary(t, `["hello","hello"]`, &jsonnav.WriteOptions{Dictionary: d})
	require.Equal(t, []byte{0x80, 0xE2, 0x02, 0x40, 0x40}, bin)

	t.Run("no_dictionary", func(t *testing.T) {
		nav, err := jsonnav.NewBinaryNavigator(bin, nil)
		require.NoError(t, err)
		for _, n := range []jsonnav.Node{nav.Root(), item(t, nav, nav.Root(), 1)} {
			err = nav.WriteNode(n, jsonnav.NewBinaryWriter(nil))
			require.ErrorIs(t, err, jsonnav.ErrNoDictionary)
		}

		_, err = jsonnav.Transcode(bin, jsonnav.FormatBinary, nil, nil)
		requireErrAt(t, err, jsonnav.ErrNoDictionary, 3)
	})

	t.Run("shared_dictionary", func(t *testing.T) {
		nav, err := jsonnav.NewBinaryNavigator(bin, &jsonnav.ReadOptions{Dictionary: d})
		require.NoError(t, err)
		w := jsonnav.NewBinaryWriter(&jsonnav.WriteOptions{Dictionary: d})
		require.NoError(t, nav.WriteNode(nav.Root(), w))
		b, err := w.Result()
		require.NoError(t, err)
		require.Equal(t, bin, b)

		b, err = jsonnav.Transcode(bin, jsonnav.FormatBinary,
			&jsonnav.ReadOptions{Dictionary: d}, &jsonnav.WriteOptions{Dictionary: d})
		require.NoError(t, err)
		require.Equal(t, bin, b)
	})
}

func TestBinaryNestingExceeded(t *testing.T) {
	buf := []byte{jsonnav.BinaryFormatMarker}
	for i := 0; i <= jsonnav.MaxNestingDepth; i++ {
		buf = append(buf, 0xE1)
	}
	buf = append(buf, 0x00)

	_, err := jsonnav.NewBinaryNavigator(buf, nil)
	requireErrAt(t, err, jsonnav.ErrMaxNestingExceeded, 1+jsonnav.MaxNestingDepth)

	_, err = jsonnav.NewBinaryReader(buf, nil)
	requireErrAt(t, err, jsonnav.ErrMaxNestingExceeded, 1+jsonnav.MaxNestingDepth)
}

func TestNavigatorDictionary(t *testing.T) {
	d := jsonnav.NewDictionary()
	bin := toBinary(t, `"hello world"`, &jsonnav.WriteOptions{Dictionary: d})

	nav, err := jsonnav.NewBinaryNavigator(bin, nil)
	require.NoError(t, err)
	_, err = nav.StringValue(nav.Root())
	requireErrAt(t, err, jsonnav.ErrNoDictionary, 1)

	nav, err = jsonnav.NewBinaryNavigator(bin, &jsonnav.ReadOptions{Dictionary: d})
	require.NoError(t, err)
	s, err := nav.StringValue(nav.Root())
	require.NoError(t, err)
	require.Equal(t, "hello world", s)
	b, ok := nav.BufferedStringValue(nav.Root())
	require.True(t, ok)
	require.Equal(t, "hello world", string(b))
}

func TestNavigatorLazyRoot(t *testing.T) {
	nav, err := jsonnav.NewTextNavigator([]byte(`[{"a":1},[2],3]`))
	require.NoError(t, err)
	requireNodeType(t, nav, nav.Root(), jsonnav.NodeTypeArray)

	var wg sync.WaitGroup
	results := make([][]jsonnav.Node, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = nav.ArrayItems(nav.Root())
		}()
	}
	wg.Wait()

	for _, items := range results {
		require.Len(t, items, 3)
		for i := range items {
			// The tree is built only once.
			require.Same(t, results[0][i], items[i])
		}
	}
}

func TestNewNavigatorErr(t *testing.T) {
	for _, td := range []struct {
		name   string
		input  []byte
		expect error
		index  int
	}{
		{name: "text_empty", input: nil, expect: jsonnav.ErrEmptyDocument},
		{name: "text_whitespace", input: []byte(" \n"), expect: jsonnav.ErrEmptyDocument},
		{
			name:   "text_missing_end_object",
			input:  []byte(`{"a":1`),
			expect: jsonnav.ErrMissingEndObject,
			index:  6,
		},
		{
			name:   "text_second_root",
			input:  []byte(`{} {}`),
			expect: jsonnav.ErrUnexpectedToken,
			index:  3,
		},
		{
			name:   "text_invalid_nested",
			input:  []byte(`[1,[2,]]`),
			expect: jsonnav.ErrUnexpectedToken,
			index:  6,
		},
		{
			name:   "binary_empty",
			input:  []byte{0x80},
			expect: jsonnav.ErrEmptyDocument,
			index:  1,
		},
		{
			name:   "binary_trailing_data",
			input:  []byte{0x80, 0x01, 0x01},
			expect: jsonnav.ErrTrailingData,
			index:  2,
		},
		{
			name:   "binary_too_short",
			input:  []byte{0x80, 0xC0, 0x05},
			expect: jsonnav.ErrBufferTooShort,
			index:  1,
		},
	} {
		t.Run(td.name, func(t *testing.T) {
			_, err := jsonnav.NewNavigator(td.input, nil)
			requireErrAt(t, err, td.expect, td.index)
		})
	}

	_, err := jsonnav.NewBinaryNavigator([]byte(`[]`), nil)
	requireErrAt(t, err, jsonnav.ErrInvalidFormat, 0)
}

func TestNavigatorForeignNode(t *testing.T) {
	text, err := jsonnav.NewTextNavigator([]byte(`"x"`))
	require.NoError(t, err)
	binary, err := jsonnav.NewBinaryNavigator(toBinary(t, `"x"`, nil), nil)
	require.NoError(t, err)

	_, err = text.NodeType(binary.Root())
	require.ErrorIs(t, err, jsonnav.ErrForeignNode)
	_, err = text.StringValue(binary.Root())
	require.ErrorIs(t, err, jsonnav.ErrForeignNode)
	_, err = binary.NodeType(text.Root())
	require.ErrorIs(t, err, jsonnav.ErrForeignNode)
	_, err = binary.CreateReader(text.Root())
	require.ErrorIs(t, err, jsonnav.ErrForeignNode)
	require.ErrorIs(t, text.WriteNode(binary.Root(), jsonnav.NewTextWriter()),
		jsonnav.ErrForeignNode)

	// Nodes of another text navigator are foreign even if their
	// span lies within this buffer.
	short, err := jsonnav.NewTextNavigator([]byte(`[7]`))
	require.NoError(t, err)
	long, err := jsonnav.NewTextNavigator([]byte(`[1,"long string"]`))
	require.NoError(t, err)
	for _, n := range []jsonnav.Node{
		long.Root(), item(t, long, long.Root(), 0), item(t, long, long.Root(), 1),
	} {
		_, err = short.NodeType(n)
		require.ErrorIs(t, err, jsonnav.ErrForeignNode)
		_, err = short.NumberValue(n)
		require.ErrorIs(t, err, jsonnav.ErrForeignNode)
		_, err = short.StringValue(n)
		require.ErrorIs(t, err, jsonnav.ErrForeignNode)
		_, err = short.CreateReader(n)
		require.ErrorIs(t, err, jsonnav.ErrForeignNode)
		require.ErrorIs(t, short.WriteNode(n, jsonnav.NewTextWriter()),
			jsonnav.ErrForeignNode)
	}
}
