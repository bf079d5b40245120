package jsonnav

import "github.com/google/uuid"

type binaryNodeKind int8

const (
	binaryNodeValue binaryNodeKind = iota
	binaryNodeFieldName

	// binaryNodeUniformItem is an item of a uniform array
	// stored without a marker.
	binaryNodeUniformItem

	// binaryNodeUniformArray is an inner array of a nested uniform array.
	binaryNodeUniformArray
)

// binaryNode addresses a value by offset. Uniform items and inner arrays
// carry the information their headers would otherwise provide.
type binaryNode struct {
	offset int
	kind   binaryNodeKind
	marker byte
	count  int
}

func (binaryNode) nodeFormat() Format { return FormatBinary }

type binaryNavigator struct {
	buf  []byte
	dict *Dictionary
}

var _ Navigator = new(binaryNavigator)

// NewBinaryNavigator creates a navigator over a binary buffer holding
// exactly one value. Nested values are validated when accessed.
// options default to DefaultReadOptions if nil.
func NewBinaryNavigator(buf []byte, options *ReadOptions) (Navigator, error) {
	if options == nil {
		options = DefaultReadOptions
	}
	if len(buf) < 1 || buf[0] != BinaryFormatMarker {
		return nil, errAt(ErrInvalidFormat, 0)
	}
	if len(buf) < 2 {
		return nil, errAt(ErrEmptyDocument, 1)
	}
	n, err := valueByteLength(buf, 1)
	if err != nil {
		return nil, err
	}
	if 1+n != len(buf) {
		return nil, errAt(ErrTrailingData, 1+n)
	}
	return &binaryNavigator{buf: buf, dict: options.Dictionary}, nil
}

func (nav *binaryNavigator) Format() Format { return FormatBinary }

func (nav *binaryNavigator) Root() Node { return binaryNode{offset: 1} }

func (nav *binaryNavigator) node(n Node) (binaryNode, error) {
	b, ok := n.(binaryNode)
	if !ok || b.offset < 1 || b.offset >= len(nav.buf) {
		return binaryNode{}, ErrForeignNode
	}
	return b, nil
}

func (nav *binaryNavigator) NodeType(n Node) (NodeType, error) {
	b, err := nav.node(n)
	if err != nil {
		return NodeTypeUnknown, err
	}
	switch b.kind {
	case binaryNodeFieldName:
		return NodeTypeFieldName, nil
	case binaryNodeUniformItem:
		return nodeTypeOf(b.marker), nil
	case binaryNodeUniformArray:
		return NodeTypeArray, nil
	}
	return nodeTypeOf(nav.buf[b.offset]), nil
}

// value returns the marker and payload of a scalar node.
func (nav *binaryNavigator) value(n Node) (binaryNode, byte, []byte, error) {
	b, err := nav.node(n)
	if err != nil {
		return b, 0, nil, err
	}
	switch b.kind {
	case binaryNodeUniformItem:
		size := uniformItemSize(b.marker)
		if size > len(nav.buf)-b.offset {
			return b, 0, nil, errAt(ErrBufferTooShort, b.offset)
		}
		return b, b.marker, nav.buf[b.offset : b.offset+size], nil
	case binaryNodeUniformArray:
		return b, markerInvalid, nil, nil
	}
	return b, nav.buf[b.offset], nav.buf[b.offset+1:], nil
}

func wrapAt(err error, b binaryNode) error {
	if err != nil {
		return errAt(err, b.offset)
	}
	return nil
}

func (nav *binaryNavigator) stringNode(n Node) (binaryNode, error) {
	b, err := nav.node(n)
	if err != nil {
		return b, err
	}
	if b.kind != binaryNodeValue && b.kind != binaryNodeFieldName {
		return b, errAt(ErrTypeMismatch, b.offset)
	}
	return b, nil
}

func (nav *binaryNavigator) StringValue(n Node) (string, error) {
	b, err := nav.stringNode(n)
	if err != nil {
		return "", err
	}
	s, err := appendBinaryString(nil, nav.buf, b.offset, nav.dict)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

func (nav *binaryNavigator) BufferedStringValue(n Node) ([]byte, bool) {
	b, err := nav.stringNode(n)
	if err != nil {
		return nil, false
	}
	return bufferedBinaryString(nav.buf, b.offset, nav.dict)
}

func (nav *binaryNavigator) NumberValue(n Node) (Number, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return Number{}, err
	}
	v, err := decodeNumber(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) Int8Value(n Node) (int8, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return 0, err
	}
	v, err := decodeInt8(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) Int16Value(n Node) (int16, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return 0, err
	}
	v, err := decodeInt16(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) Int32Value(n Node) (int32, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return 0, err
	}
	v, err := decodeInt32(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) Int64Value(n Node) (int64, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return 0, err
	}
	v, err := decodeInt64(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) UInt32Value(n Node) (uint32, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return 0, err
	}
	v, err := decodeUInt32(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) Float32Value(n Node) (float32, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return 0, err
	}
	v, err := decodeFloat32(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) Float64Value(n Node) (float64, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return 0, err
	}
	v, err := decodeFloat64(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) GuidValue(n Node) (uuid.UUID, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return uuid.Nil, err
	}
	v, err := decodeGuid(m, p)
	return v, wrapAt(err, b)
}

func (nav *binaryNavigator) BinaryValue(n Node) ([]byte, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return nil, err
	}
	v, err := decodeBinary(m, p)
	return v, wrapAt(err, b)
}

// container returns the node of a regular array or object of type t.
func (nav *binaryNavigator) container(n Node, t NodeType) (binaryNode, error) {
	b, err := nav.node(n)
	if err != nil {
		return b, err
	}
	if b.kind != binaryNodeValue || nodeTypeOf(nav.buf[b.offset]) != t {
		return b, errAt(ErrTypeMismatch, b.offset)
	}
	return b, nil
}

// forEachChild calls fn with the offset of every child of the generic
// container at off until fn returns false.
func (nav *binaryNavigator) forEachChild(off int, fn func(child int) bool) error {
	n, err := valueByteLength(nav.buf, off)
	if err != nil {
		return err
	}
	end := off + n
	for c := off + firstChildOffset(nav.buf[off]); c < end; {
		l, err := valueByteLength(nav.buf[:end], c)
		if err != nil {
			return err
		}
		if !fn(c) {
			return nil
		}
		c += l
	}
	return nil
}

func (nav *binaryNavigator) ArrayItemCount(n Node) (int, error) {
	b, err := nav.node(n)
	if err != nil {
		return 0, err
	}
	if b.kind == binaryNodeUniformArray {
		return b.count, nil
	}
	if b, err = nav.container(n, NodeTypeArray); err != nil {
		return 0, err
	}
	if isUniformArray(nav.buf[b.offset]) {
		u, err := readUniformArray(nav.buf, b.offset)
		return u.count, err
	}
	if c, ok := containerCount(nav.buf, b.offset); ok {
		return c, nil
	}
	c := 0
	err = nav.forEachChild(b.offset, func(int) bool { c++; return true })
	return c, err
}

func (nav *binaryNavigator) ArrayItemAt(n Node, index int) (Node, error) {
	b, err := nav.node(n)
	if err != nil {
		return nil, err
	}
	if b.kind == binaryNodeUniformArray {
		if index < 0 || index >= b.count {
			return nil, errAt(ErrIndexOutOfRange, b.offset)
		}
		return binaryNode{
			offset: b.offset + index*uniformItemSize(b.marker),
			kind:   binaryNodeUniformItem,
			marker: b.marker,
		}, nil
	}
	if b, err = nav.container(n, NodeTypeArray); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, errAt(ErrIndexOutOfRange, b.offset)
	}
	if isUniformArray(nav.buf[b.offset]) {
		u, err := readUniformArray(nav.buf, b.offset)
		if err != nil {
			return nil, err
		}
		if index >= u.count {
			return nil, errAt(ErrIndexOutOfRange, b.offset)
		}
		return uniformChild(b.offset, u, index), nil
	}
	var item Node
	i := 0
	err = nav.forEachChild(b.offset, func(c int) bool {
		if i == index {
			item = binaryNode{offset: c}
			return false
		}
		i++
		return true
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errAt(ErrIndexOutOfRange, b.offset)
	}
	return item, nil
}

// uniformChild returns the node of item i of uniform array u at off.
func uniformChild(off int, u uniformArray, i int) binaryNode {
	if u.nested {
		return binaryNode{
			offset: off + u.prefix + i*u.innerCount*u.itemSize,
			kind:   binaryNodeUniformArray,
			marker: u.itemMarker,
			count:  u.innerCount,
		}
	}
	return binaryNode{
		offset: off + u.prefix + i*u.itemSize,
		kind:   binaryNodeUniformItem,
		marker: u.itemMarker,
	}
}

func (nav *binaryNavigator) ArrayItems(n Node) ([]Node, error) {
	c, err := nav.ArrayItemCount(n)
	if err != nil {
		return nil, err
	}
	items := make([]Node, 0, c)
	b, _ := nav.node(n)
	switch {
	case b.kind == binaryNodeUniformArray:
		size := uniformItemSize(b.marker)
		for i := 0; i < c; i++ {
			items = append(items, binaryNode{
				offset: b.offset + i*size,
				kind:   binaryNodeUniformItem,
				marker: b.marker,
			})
		}
	case isUniformArray(nav.buf[b.offset]):
		u, err := readUniformArray(nav.buf, b.offset)
		if err != nil {
			return nil, err
		}
		for i := 0; i < u.count; i++ {
			items = append(items, uniformChild(b.offset, u, i))
		}
	default:
		err = nav.forEachChild(b.offset, func(c int) bool {
			items = append(items, binaryNode{offset: c})
			return true
		})
	}
	return items, err
}

// forEachProperty calls fn with the offsets of every name and value of
// the object at off until fn returns false.
func (nav *binaryNavigator) forEachProperty(
	off int, fn func(name, value int) (bool, error),
) error {
	name := -1
	var fnErr error
	err := nav.forEachChild(off, func(c int) bool {
		if name < 0 {
			if nodeTypeOf(nav.buf[c]) != NodeTypeString {
				fnErr = errAt(ErrFieldNameExpected, c)
				return false
			}
			name = c
			return true
		}
		var ok bool
		ok, fnErr = fn(name, c)
		name = -1
		return ok && fnErr == nil
	})
	switch {
	case err != nil:
		return err
	case fnErr != nil:
		return fnErr
	case name >= 0:
		return errAt(ErrMissingPropertyValue, name)
	}
	return nil
}

func (nav *binaryNavigator) ObjectPropertyCount(n Node) (int, error) {
	b, err := nav.container(n, NodeTypeObject)
	if err != nil {
		return 0, err
	}
	if c, ok := containerCount(nav.buf, b.offset); ok {
		return c, nil
	}
	c := 0
	err = nav.forEachProperty(b.offset, func(int, int) (bool, error) {
		c++
		return true, nil
	})
	return c, err
}

func (nav *binaryNavigator) TryGetObjectProperty(
	n Node, name string,
) (ObjectProperty, bool, error) {
	b, err := nav.container(n, NodeTypeObject)
	if err != nil {
		return ObjectProperty{}, false, err
	}
	var p ObjectProperty
	var found bool
	var scratch []byte
	err = nav.forEachProperty(b.offset, func(nameOff, valueOff int) (bool, error) {
		var eq bool
		var err error
		eq, scratch, err = binaryStringEquals(nav.buf, nameOff, nav.dict, name, scratch)
		if err != nil {
			return false, err
		}
		if eq {
			p = ObjectProperty{
				Name:  binaryNode{offset: nameOff, kind: binaryNodeFieldName},
				Value: binaryNode{offset: valueOff},
			}
			found = true
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return ObjectProperty{}, false, err
	}
	return p, found, nil
}

func (nav *binaryNavigator) ObjectProperties(n Node) ([]ObjectProperty, error) {
	b, err := nav.container(n, NodeTypeObject)
	if err != nil {
		return nil, err
	}
	var props []ObjectProperty
	if c, ok := containerCount(nav.buf, b.offset); ok {
		props = make([]ObjectProperty, 0, c)
	}
	err = nav.forEachProperty(b.offset, func(name, value int) (bool, error) {
		props = append(props, ObjectProperty{
			Name:  binaryNode{offset: name, kind: binaryNodeFieldName},
			Value: binaryNode{offset: value},
		})
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return props, nil
}

func (nav *binaryNavigator) CreateReader(n Node) (Reader, error) {
	b, m, p, err := nav.value(n)
	if err != nil {
		return nil, err
	}
	switch b.kind {
	case binaryNodeUniformItem:
		buf := append([]byte{BinaryFormatMarker, m}, p...)
		return newBinaryReaderAt(buf, 1, len(buf), nav.dict), nil
	case binaryNodeUniformArray:
		size := b.count * uniformItemSize(b.marker)
		if size > len(nav.buf)-b.offset {
			return nil, errAt(ErrBufferTooShort, b.offset)
		}
		buf := appendUniformHeader([]byte{BinaryFormatMarker}, b.marker, b.count)
		buf = append(buf, nav.buf[b.offset:b.offset+size]...)
		return newBinaryReaderAt(buf, 1, len(buf), nav.dict), nil
	}
	l, err := valueByteLength(nav.buf, b.offset)
	if err != nil {
		return nil, err
	}
	return newBinaryReaderAt(nav.buf, b.offset, b.offset+l, nav.dict), nil
}

func (nav *binaryNavigator) WriteNode(n Node, w Writer) error {
	if bw, ok := w.(*binaryWriter); ok && bw.dict == nav.dict {
		b, err := nav.node(n)
		if err != nil {
			return err
		}
		if b.kind == binaryNodeValue || b.kind == binaryNodeFieldName {
			l, err := valueByteLength(nav.buf, b.offset)
			if err != nil {
				return err
			}
			refs, err := hasStringReferences(nav.buf, b.offset, nav.dict == nil)
			if err != nil {
				return err
			}
			if !refs {
				t := TokenTypeFieldName
				if b.kind == binaryNodeValue {
					t = tokenTypeOf(nodeTypeOf(nav.buf[b.offset]))
				}
				return bw.writeRaw(t, nav.buf[b.offset:b.offset+l])
			}
		}
	}
	return writeNode(nav, n, w)
}
