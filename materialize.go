package jsonnav

import "strconv"

// Materialize converts the subtree of n into Go values:
//
//	null          -> nil
//	true, false   -> bool
//	number        -> int64 if integer, otherwise float64
//	string        -> string
//	array         -> []any
//	object        -> map[string]any
//	typed values  -> int8, int16, int32, int64, uint32,
//	                 float32, float64, uuid.UUID, []byte
//
// If an object contains a name more than once the first property wins,
// same as TryGetObjectProperty. Subtrees nested deeper than
// MaxNestingDepth fail with ErrMaxNestingExceeded.
func Materialize(nav Navigator, n Node) (any, error) {
	return materialize(nav, n, 0)
}

func materialize(nav Navigator, n Node, depth int) (any, error) {
	t, err := nav.NodeType(n)
	if err != nil {
		return nil, err
	}
	if (t == NodeTypeArray || t == NodeTypeObject) && depth >= MaxNestingDepth {
		return nil, ErrMaxNestingExceeded
	}
	switch t {
	case NodeTypeNull:
		return nil, nil
	case NodeTypeTrue:
		return true, nil
	case NodeTypeFalse:
		return false, nil
	case NodeTypeNumber:
		v, err := nav.NumberValue(n)
		if err != nil {
			return nil, err
		}
		if v.IsInteger() {
			return v.Int64(), nil
		}
		return v.Float64(), nil
	case NodeTypeString, NodeTypeFieldName:
		return nav.StringValue(n)
	case NodeTypeArray:
		items, err := nav.ArrayItems(n)
		if err != nil {
			return nil, err
		}
		a := make([]any, len(items))
		for i, item := range items {
			if a[i], err = materialize(nav, item, depth+1); err != nil {
				return nil, err
			}
		}
		return a, nil
	case NodeTypeObject:
		props, err := nav.ObjectProperties(n)
		if err != nil {
			return nil, err
		}
		m := make(map[string]any, len(props))
		for _, p := range props {
			name, err := nav.StringValue(p.Name)
			if err != nil {
				return nil, err
			}
			if _, ok := m[name]; ok {
				continue
			}
			if m[name], err = materialize(nav, p.Value, depth+1); err != nil {
				return nil, err
			}
		}
		return m, nil
	case NodeTypeInt8:
		return nav.Int8Value(n)
	case NodeTypeInt16:
		return nav.Int16Value(n)
	case NodeTypeInt32:
		return nav.Int32Value(n)
	case NodeTypeInt64:
		return nav.Int64Value(n)
	case NodeTypeUInt32:
		return nav.UInt32Value(n)
	case NodeTypeFloat32:
		return nav.Float32Value(n)
	case NodeTypeFloat64:
		return nav.Float64Value(n)
	case NodeTypeGuid:
		return nav.GuidValue(n)
	case NodeTypeBinary:
		return nav.BinaryValue(n)
	}
	return nil, ErrInvalidTypeMarker
}

// Lookup walks path from n. Segments select object properties by name
// and array items by decimal index.
func Lookup(nav Navigator, n Node, path ...string) (Node, bool, error) {
	for _, seg := range path {
		t, err := nav.NodeType(n)
		if err != nil {
			return nil, false, err
		}
		switch t {
		case NodeTypeObject:
			p, ok, err := nav.TryGetObjectProperty(n, seg)
			if err != nil || !ok {
				return nil, false, err
			}
			n = p.Value
		case NodeTypeArray:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 {
				return nil, false, nil
			}
			c, err := nav.ArrayItemCount(n)
			if err != nil {
				return nil, false, err
			}
			if i >= c {
				return nil, false, nil
			}
			if n, err = nav.ArrayItemAt(n, i); err != nil {
				return nil, false, err
			}
		default:
			return nil, false, nil
		}
	}
	return n, true, nil
}
