package jsonnav

import "github.com/google/uuid"

// Node is a handle to a value in the buffer of the Navigator that
// returned it. Nodes are only valid with that navigator.
type Node interface {
	nodeFormat() Format
}

// ObjectProperty is a name and value pair of an object.
// Name is a node of type NodeTypeFieldName.
type ObjectProperty struct {
	Name  Node
	Value Node
}

// Navigator provides random access to the values of a document.
// Navigators are immutable and safe for concurrent use.
type Navigator interface {
	Format() Format

	// Root returns the root value.
	Root() Node

	NodeType(n Node) (NodeType, error)

	StringValue(n Node) (string, error)

	// BufferedStringValue returns the string without copying if it's
	// stored verbatim, otherwise returns false.
	// The returned slice must not be modified.
	BufferedStringValue(n Node) ([]byte, bool)

	NumberValue(n Node) (Number, error)
	Int8Value(n Node) (int8, error)
	Int16Value(n Node) (int16, error)
	Int32Value(n Node) (int32, error)
	Int64Value(n Node) (int64, error)
	UInt32Value(n Node) (uint32, error)
	Float32Value(n Node) (float32, error)
	Float64Value(n Node) (float64, error)
	GuidValue(n Node) (uuid.UUID, error)
	BinaryValue(n Node) ([]byte, error)

	ArrayItemCount(n Node) (int, error)
	ArrayItemAt(n Node, index int) (Node, error)
	ArrayItems(n Node) ([]Node, error)

	ObjectPropertyCount(n Node) (int, error)

	// TryGetObjectProperty returns the first property named name.
	TryGetObjectProperty(n Node, name string) (ObjectProperty, bool, error)
	ObjectProperties(n Node) ([]ObjectProperty, error)

	// CreateReader returns a reader over the subtree of n.
	CreateReader(n Node) (Reader, error)

	// WriteNode writes the subtree of n to w.
	// Field name nodes are written as field names.
	WriteNode(n Node, w Writer) error
}

// NewNavigator creates a navigator for buf detecting its format.
// options apply to binary buffers only and default to DefaultReadOptions.
func NewNavigator(buf []byte, options *ReadOptions) (Navigator, error) {
	if DetectFormat(buf) == FormatBinary {
		return NewBinaryNavigator(buf, options)
	}
	return NewTextNavigator(buf)
}

// writeNode writes the subtree of n to w using nav's getters.
func writeNode(nav Navigator, n Node, w Writer) error {
	t, err := nav.NodeType(n)
	if err != nil {
		return err
	}
	switch t {
	case NodeTypeArray:
		items, err := nav.ArrayItems(n)
		if err != nil {
			return err
		}
		if err := w.WriteArrayStart(); err != nil {
			return err
		}
		for _, item := range items {
			if err := writeNode(nav, item, w); err != nil {
				return err
			}
		}
		return w.WriteArrayEnd()
	case NodeTypeObject:
		props, err := nav.ObjectProperties(n)
		if err != nil {
			return err
		}
		if err := w.WriteObjectStart(); err != nil {
			return err
		}
		for _, p := range props {
			if err := writeNode(nav, p.Name, w); err != nil {
				return err
			}
			if err := writeNode(nav, p.Value, w); err != nil {
				return err
			}
		}
		return w.WriteObjectEnd()
	case NodeTypeString, NodeTypeFieldName:
		s, err := nav.StringValue(n)
		if err != nil {
			return err
		}
		if t == NodeTypeFieldName {
			return w.WriteFieldName(s)
		}
		return w.WriteStringValue(s)
	case NodeTypeNumber:
		v, err := nav.NumberValue(n)
		if err != nil {
			return err
		}
		return w.WriteNumberValue(v)
	case NodeTypeNull:
		return w.WriteNullValue()
	case NodeTypeTrue:
		return w.WriteBoolValue(true)
	case NodeTypeFalse:
		return w.WriteBoolValue(false)
	case NodeTypeInt8:
		v, err := nav.Int8Value(n)
		if err != nil {
			return err
		}
		return w.WriteInt8Value(v)
	case NodeTypeInt16:
		v, err := nav.Int16Value(n)
		if err != nil {
			return err
		}
		return w.WriteInt16Value(v)
	case NodeTypeInt32:
		v, err := nav.Int32Value(n)
		if err != nil {
			return err
		}
		return w.WriteInt32Value(v)
	case NodeTypeInt64:
		v, err := nav.Int64Value(n)
		if err != nil {
			return err
		}
		return w.WriteInt64Value(v)
	case NodeTypeUInt32:
		v, err := nav.UInt32Value(n)
		if err != nil {
			return err
		}
		return w.WriteUInt32Value(v)
	case NodeTypeFloat32:
		v, err := nav.Float32Value(n)
		if err != nil {
			return err
		}
		return w.WriteFloat32Value(v)
	case NodeTypeFloat64:
		v, err := nav.Float64Value(n)
		if err != nil {
			return err
		}
		return w.WriteFloat64Value(v)
	case NodeTypeGuid:
		v, err := nav.GuidValue(n)
		if err != nil {
			return err
		}
		return w.WriteGuidValue(v)
	case NodeTypeBinary:
		v, err := nav.BinaryValue(n)
		if err != nil {
			return err
		}
		return w.WriteBinaryValue(v)
	}
	return ErrInvalidTypeMarker
}
