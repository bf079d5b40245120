package jsonnav

import (
	"sync"

	"github.com/google/uuid"
)

// textNode is a node of the text navigator's tree. Every node
// keeps the span of its text in the buffer.
type textNode interface {
	Node
	nodeType() NodeType
	span() (start, end int)
	source() *byte
}

// textSpan delimits a node in the buffer starting at src.
type textSpan struct {
	start, end int
	src        *byte
}

func newTextSpan(r *textReader, start, end int) textSpan {
	return textSpan{start: start, end: end, src: &r.buf[0]}
}

func (textSpan) nodeFormat() Format       { return FormatText }
func (s textSpan) span() (start, end int) { return s.start, s.end }
func (s textSpan) source() *byte          { return s.src }

type (
	textNull  struct{ textSpan }
	textTrue  struct{ textSpan }
	textFalse struct{ textSpan }

	textNumber struct{ textSpan }

	textString struct {
		textSpan
		escaped bool
	}
	textFieldName struct {
		textSpan
		escaped bool
	}

	textInt8 struct {
		textSpan
		v int8
	}
	textInt16 struct {
		textSpan
		v int16
	}
	textInt32 struct {
		textSpan
		v int32
	}
	textInt64 struct {
		textSpan
		v int64
	}
	textUInt32 struct {
		textSpan
		v uint32
	}
	textFloat32 struct {
		textSpan
		v float32
	}
	textFloat64 struct {
		textSpan
		v float64
	}
	textGuid struct {
		textSpan
		v uuid.UUID
	}
	textBinary struct {
		textSpan
		v []byte
	}

	textArray struct {
		textSpan
		items []textNode
	}
	textObject struct {
		textSpan
		props []textProperty
	}

	// textLazyContainer is the root array or object.
	// Its children are parsed on first access.
	textLazyContainer struct {
		textSpan
		object bool
		once   sync.Once
		built  textNode
		err    error
	}
)

type textProperty struct {
	name  *textFieldName
	value textNode
}

func (*textNull) nodeType() NodeType            { return NodeTypeNull }
func (*textTrue) nodeType() NodeType            { return NodeTypeTrue }
func (*textFalse) nodeType() NodeType           { return NodeTypeFalse }
func (*textNumber) nodeType() NodeType          { return NodeTypeNumber }
func (*textString) nodeType() NodeType          { return NodeTypeString }
func (*textFieldName) nodeType() NodeType       { return NodeTypeFieldName }
func (*textInt8) nodeType() NodeType            { return NodeTypeInt8 }
func (*textInt16) nodeType() NodeType           { return NodeTypeInt16 }
func (*textInt32) nodeType() NodeType           { return NodeTypeInt32 }
func (*textInt64) nodeType() NodeType           { return NodeTypeInt64 }
func (*textUInt32) nodeType() NodeType          { return NodeTypeUInt32 }
func (*textFloat32) nodeType() NodeType         { return NodeTypeFloat32 }
func (*textFloat64) nodeType() NodeType         { return NodeTypeFloat64 }
func (*textGuid) nodeType() NodeType            { return NodeTypeGuid }
func (*textBinary) nodeType() NodeType          { return NodeTypeBinary }
func (*textArray) nodeType() NodeType           { return NodeTypeArray }
func (*textObject) nodeType() NodeType          { return NodeTypeObject }
func (l *textLazyContainer) nodeType() NodeType {
	if l.object {
		return NodeTypeObject
	}
	return NodeTypeArray
}

type textNavigator struct {
	buf  []byte
	root textNode
}

var _ Navigator = new(textNavigator)

// NewTextNavigator creates a navigator over JSON text holding exactly
// one value. The whole buffer is validated up front, a root array or
// object is parsed into a tree on first access.
func NewTextNavigator(buf []byte) (Navigator, error) {
	r := newTextReaderSpan(buf, 0, len(buf))
	ok, err := r.Read()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errAt(ErrEmptyDocument, 0)
	}
	nav := &textNavigator{buf: buf}
	switch r.token {
	case TokenTypeBeginArray, TokenTypeBeginObject:
		start := r.start
		for r.Depth() > 0 {
			if _, err := r.Read(); err != nil {
				return nil, err
			}
		}
		nav.root = &textLazyContainer{
			textSpan: newTextSpan(r, start, r.end),
			object:   r.token == TokenTypeEndObject,
		}
	default:
		if nav.root, err = scalarTextNode(r); err != nil {
			return nil, err
		}
	}
	if _, err := r.Read(); err != nil {
		return nil, err
	}
	return nav, nil
}

// scalarTextNode creates the node of the current token of r.
func scalarTextNode(r *textReader) (textNode, error) {
	s := newTextSpan(r, r.start, r.end)
	switch r.token {
	case TokenTypeNull:
		return &textNull{s}, nil
	case TokenTypeTrue:
		return &textTrue{s}, nil
	case TokenTypeFalse:
		return &textFalse{s}, nil
	case TokenTypeNumber:
		return &textNumber{s}, nil
	case TokenTypeString:
		return &textString{textSpan: s, escaped: r.escaped}, nil
	case TokenTypeFieldName:
		return &textFieldName{textSpan: s, escaped: r.escaped}, nil
	case TokenTypeInt8:
		return &textInt8{s, int8(r.i64)}, nil
	case TokenTypeInt16:
		return &textInt16{s, int16(r.i64)}, nil
	case TokenTypeInt32:
		return &textInt32{s, int32(r.i64)}, nil
	case TokenTypeInt64:
		return &textInt64{s, r.i64}, nil
	case TokenTypeUInt32:
		return &textUInt32{s, r.u32}, nil
	case TokenTypeFloat32:
		return &textFloat32{s, float32(r.f64)}, nil
	case TokenTypeFloat64:
		return &textFloat64{s, r.f64}, nil
	case TokenTypeGuid:
		return &textGuid{s, r.guid}, nil
	case TokenTypeBinary:
		return &textBinary{s, r.bin}, nil
	}
	return nil, errAt(ErrUnexpectedToken, r.start)
}

// buildTextNode builds the subtree of the token r is positioned on.
func buildTextNode(r *textReader) (textNode, error) {
	switch r.token {
	case TokenTypeBeginArray:
		a := &textArray{textSpan: newTextSpan(r, r.start, 0)}
		for {
			if _, err := r.Read(); err != nil {
				return nil, err
			}
			if r.token == TokenTypeEndArray {
				a.end = r.end
				return a, nil
			}
			item, err := buildTextNode(r)
			if err != nil {
				return nil, err
			}
			a.items = append(a.items, item)
		}
	case TokenTypeBeginObject:
		o := &textObject{textSpan: newTextSpan(r, r.start, 0)}
		for {
			if _, err := r.Read(); err != nil {
				return nil, err
			}
			if r.token == TokenTypeEndObject {
				o.end = r.end
				return o, nil
			}
			name := &textFieldName{
				textSpan: newTextSpan(r, r.start, r.end),
				escaped:  r.escaped,
			}
			if _, err := r.Read(); err != nil {
				return nil, err
			}
			value, err := buildTextNode(r)
			if err != nil {
				return nil, err
			}
			o.props = append(o.props, textProperty{name: name, value: value})
		}
	}
	return scalarTextNode(r)
}

// resolve returns the parsed container of a lazy node
// and n itself otherwise.
func (l *textLazyContainer) resolve(buf []byte) (textNode, error) {
	l.once.Do(func() {
		r := newTextReaderSpan(buf, l.start, l.end)
		if _, l.err = r.Read(); l.err == nil {
			l.built, l.err = buildTextNode(r)
		}
	})
	return l.built, l.err
}

func (nav *textNavigator) Format() Format { return FormatText }

func (nav *textNavigator) Root() Node { return nav.root }

// owned returns n as a textNode if it was created by nav.
func (nav *textNavigator) owned(n Node) (textNode, bool) {
	t, ok := n.(textNode)
	if !ok || t == nil || t.source() != &nav.buf[0] {
		return nil, false
	}
	if _, end := t.span(); end > len(nav.buf) {
		return nil, false
	}
	return t, true
}

func (nav *textNavigator) node(n Node) (textNode, error) {
	t, ok := nav.owned(n)
	if !ok {
		return nil, ErrForeignNode
	}
	if l, ok := t.(*textLazyContainer); ok {
		return l.resolve(nav.buf)
	}
	return t, nil
}

func (nav *textNavigator) NodeType(n Node) (NodeType, error) {
	t, ok := nav.owned(n)
	if !ok {
		return NodeTypeUnknown, ErrForeignNode
	}
	return t.nodeType(), nil
}

func mismatch(t textNode) error {
	start, _ := t.span()
	return errAt(ErrTypeMismatch, start)
}

func (nav *textNavigator) StringValue(n Node) (string, error) {
	t, err := nav.node(n)
	if err != nil {
		return "", err
	}
	switch v := t.(type) {
	case *textString:
		return textStringValue(nav.buf, v.start, v.end, v.escaped)
	case *textFieldName:
		return textStringValue(nav.buf, v.start, v.end, v.escaped)
	}
	return "", mismatch(t)
}

func (nav *textNavigator) BufferedStringValue(n Node) ([]byte, bool) {
	t, err := nav.node(n)
	if err != nil {
		return nil, false
	}
	switch v := t.(type) {
	case *textString:
		if !v.escaped {
			return nav.buf[v.start+1 : v.end-1], true
		}
	case *textFieldName:
		if !v.escaped {
			return nav.buf[v.start+1 : v.end-1], true
		}
	}
	return nil, false
}

func (nav *textNavigator) NumberValue(n Node) (Number, error) {
	t, err := nav.node(n)
	if err != nil {
		return Number{}, err
	}
	v, ok := t.(*textNumber)
	if !ok {
		return Number{}, mismatch(t)
	}
	num, err := ParseNumber(nav.buf[v.start:v.end])
	if err != nil {
		return Number{}, errAt(err, v.start)
	}
	return num, nil
}

func (nav *textNavigator) Int8Value(n Node) (int8, error) {
	t, err := nav.node(n)
	if err != nil {
		return 0, err
	}
	if v, ok := t.(*textInt8); ok {
		return v.v, nil
	}
	return 0, mismatch(t)
}

func (nav *textNavigator) Int16Value(n Node) (int16, error) {
	t, err := nav.node(n)
	if err != nil {
		return 0, err
	}
	if v, ok := t.(*textInt16); ok {
		return v.v, nil
	}
	return 0, mismatch(t)
}

func (nav *textNavigator) Int32Value(n Node) (int32, error) {
	t, err := nav.node(n)
	if err != nil {
		return 0, err
	}
	if v, ok := t.(*textInt32); ok {
		return v.v, nil
	}
	return 0, mismatch(t)
}

func (nav *textNavigator) Int64Value(n Node) (int64, error) {
	t, err := nav.node(n)
	if err != nil {
		return 0, err
	}
	if v, ok := t.(*textInt64); ok {
		return v.v, nil
	}
	return 0, mismatch(t)
}

func (nav *textNavigator) UInt32Value(n Node) (uint32, error) {
	t, err := nav.node(n)
	if err != nil {
		return 0, err
	}
	if v, ok := t.(*textUInt32); ok {
		return v.v, nil
	}
	return 0, mismatch(t)
}

func (nav *textNavigator) Float32Value(n Node) (float32, error) {
	t, err := nav.node(n)
	if err != nil {
		return 0, err
	}
	if v, ok := t.(*textFloat32); ok {
		return v.v, nil
	}
	return 0, mismatch(t)
}

func (nav *textNavigator) Float64Value(n Node) (float64, error) {
	t, err := nav.node(n)
	if err != nil {
		return 0, err
	}
	if v, ok := t.(*textFloat64); ok {
		return v.v, nil
	}
	return 0, mismatch(t)
}

func (nav *textNavigator) GuidValue(n Node) (uuid.UUID, error) {
	t, err := nav.node(n)
	if err != nil {
		return uuid.Nil, err
	}
	if v, ok := t.(*textGuid); ok {
		return v.v, nil
	}
	return uuid.Nil, mismatch(t)
}

func (nav *textNavigator) BinaryValue(n Node) ([]byte, error) {
	t, err := nav.node(n)
	if err != nil {
		return nil, err
	}
	if v, ok := t.(*textBinary); ok {
		return v.v, nil
	}
	return nil, mismatch(t)
}

func (nav *textNavigator) array(n Node) (*textArray, error) {
	t, err := nav.node(n)
	if err != nil {
		return nil, err
	}
	a, ok := t.(*textArray)
	if !ok {
		return nil, mismatch(t)
	}
	return a, nil
}

func (nav *textNavigator) object(n Node) (*textObject, error) {
	t, err := nav.node(n)
	if err != nil {
		return nil, err
	}
	o, ok := t.(*textObject)
	if !ok {
		return nil, mismatch(t)
	}
	return o, nil
}

func (nav *textNavigator) ArrayItemCount(n Node) (int, error) {
	a, err := nav.array(n)
	if err != nil {
		return 0, err
	}
	return len(a.items), nil
}

func (nav *textNavigator) ArrayItemAt(n Node, index int) (Node, error) {
	a, err := nav.array(n)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(a.items) {
		return nil, errAt(ErrIndexOutOfRange, a.start)
	}
	return a.items[index], nil
}

func (nav *textNavigator) ArrayItems(n Node) ([]Node, error) {
	a, err := nav.array(n)
	if err != nil {
		return nil, err
	}
	items := make([]Node, len(a.items))
	for i, item := range a.items {
		items[i] = item
	}
	return items, nil
}

func (nav *textNavigator) ObjectPropertyCount(n Node) (int, error) {
	o, err := nav.object(n)
	if err != nil {
		return 0, err
	}
	return len(o.props), nil
}

func (nav *textNavigator) TryGetObjectProperty(
	n Node, name string,
) (ObjectProperty, bool, error) {
	o, err := nav.object(n)
	if err != nil {
		return ObjectProperty{}, false, err
	}
	for _, p := range o.props {
		if b, ok := nav.BufferedStringValue(p.name); ok {
			if string(b) != name {
				continue
			}
		} else if s, err := nav.StringValue(p.name); err != nil {
			return ObjectProperty{}, false, err
		} else if s != name {
			continue
		}
		return ObjectProperty{Name: p.name, Value: p.value}, true, nil
	}
	return ObjectProperty{}, false, nil
}

func (nav *textNavigator) ObjectProperties(n Node) ([]ObjectProperty, error) {
	o, err := nav.object(n)
	if err != nil {
		return nil, err
	}
	props := make([]ObjectProperty, len(o.props))
	for i, p := range o.props {
		props[i] = ObjectProperty{Name: p.name, Value: p.value}
	}
	return props, nil
}

func (nav *textNavigator) CreateReader(n Node) (Reader, error) {
	t, ok := nav.owned(n)
	if !ok {
		return nil, ErrForeignNode
	}
	start, end := t.span()
	return newTextReaderSpan(nav.buf, start, end), nil
}

func (nav *textNavigator) WriteNode(n Node, w Writer) error {
	t, ok := nav.owned(n)
	if !ok {
		return ErrForeignNode
	}
	if tw, ok := w.(*textWriter); ok {
		start, end := t.span()
		return tw.writeRaw(tokenTypeOf(t.nodeType()), nav.buf[start:end])
	}
	return writeNode(nav, n, w)
}
