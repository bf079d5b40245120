package jsonnav

import (
	"encoding/binary"
	"math"
)

// uniformArray is the decoded header of a packed number array.
type uniformArray struct {
	itemMarker byte
	itemSize   int

	// count is the number of items or, if nested, of inner arrays.
	count int

	// innerCount is the number of items of each inner array.
	innerCount int
	nested     bool

	// prefix is the header length including the marker.
	prefix int
}

func (u uniformArray) length() int {
	if u.nested {
		return u.prefix + u.count*u.innerCount*u.itemSize
	}
	return u.prefix + u.count*u.itemSize
}

// uniformItemSize returns the packed size of an item of marker m
// or 0 if m can't be packed.
func uniformItemSize(m byte) int {
	switch m {
	case markerNumberUInt8, markerInt8:
		return 1
	case markerNumberInt16, markerInt16:
		return 2
	case markerNumberInt32, markerInt32, markerUInt32, markerFloat32:
		return 4
	case markerNumberInt64, markerNumberDouble, markerInt64, markerFloat64:
		return 8
	}
	return 0
}

// readUniformArray decodes the header of the uniform array at buf[off].
func readUniformArray(buf []byte, off int) (u uniformArray, err error) {
	m := buf[off]
	pos := off + 1
	next := func() (byte, error) {
		if pos >= len(buf) {
			return 0, errAt(ErrBufferTooShort, off)
		}
		pos++
		return buf[pos-1], nil
	}
	width := func(m byte) int {
		if m == markerUniformNumArray1 || m == markerUniformArrArray1 {
			return 1
		}
		return 2
	}

	switch m {
	case markerUniformNumArray1, markerUniformNumArray2:
		if u.itemMarker, err = next(); err != nil {
			return u, err
		}
		if u.count, err = readUint(buf, pos, width(m)); err != nil {
			return u, err
		}
		pos += width(m)
	case markerUniformArrArray1, markerUniformArrArray2:
		inner, err := next()
		if err != nil {
			return u, err
		}
		if inner != markerUniformNumArray1 && inner != markerUniformNumArray2 {
			return u, errAt(ErrInvalidTypeMarker, pos-1)
		}
		if u.itemMarker, err = next(); err != nil {
			return u, err
		}
		if u.innerCount, err = readUint(buf, pos, width(inner)); err != nil {
			return u, err
		}
		pos += width(inner)
		if u.count, err = readUint(buf, pos, width(m)); err != nil {
			return u, err
		}
		pos += width(m)
		u.nested = true
	default:
		return u, errAt(ErrInvalidTypeMarker, off)
	}

	if u.itemSize = uniformItemSize(u.itemMarker); u.itemSize == 0 {
		return u, errAt(ErrInvalidTypeMarker, off+1)
	}
	u.prefix = pos - off
	return u, nil
}

// appendUniformHeader appends the header of a flat uniform array.
func appendUniformHeader(dst []byte, itemMarker byte, count int) []byte {
	if count <= math.MaxUint8 {
		return append(dst, markerUniformNumArray1, itemMarker, byte(count))
	}
	dst = append(dst, markerUniformNumArray2, itemMarker)
	return binary.LittleEndian.AppendUint16(dst, uint16(count))
}

// appendNestedUniformHeader appends the header of an array of
// uniform arrays.
func appendNestedUniformHeader(dst []byte, itemMarker byte, innerCount, count int) []byte {
	outer, inner := byte(markerUniformArrArray1), byte(markerUniformNumArray1)
	if count > math.MaxUint8 {
		outer = markerUniformArrArray2
	}
	if innerCount > math.MaxUint8 {
		inner = markerUniformNumArray2
	}
	dst = append(dst, outer, inner, itemMarker)
	dst = appendUintN(dst, innerCount, inner == markerUniformNumArray2)
	return appendUintN(dst, count, outer == markerUniformArrArray2)
}

func appendUintN(dst []byte, v int, wide bool) []byte {
	if wide {
		return binary.LittleEndian.AppendUint16(dst, uint16(v))
	}
	return append(dst, byte(v))
}

// appendPackedNumber appends n as an item of marker m.
func appendPackedNumber(dst []byte, m byte, n Number) []byte {
	switch m {
	case markerNumberUInt8:
		return append(dst, byte(n.Int64()))
	case markerNumberInt16:
		return binary.LittleEndian.AppendUint16(dst, uint16(n.Int64()))
	case markerNumberInt32:
		return binary.LittleEndian.AppendUint32(dst, uint32(n.Int64()))
	case markerNumberInt64:
		return binary.LittleEndian.AppendUint64(dst, uint64(n.Int64()))
	}
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(n.Float64()))
}

// maxExactFloatInt is the largest magnitude up to which all integers
// are representable as float64.
const maxExactFloatInt = 1 << 53

// packUniformArray returns the uniform encoding of an array holding
// count items encoded in payload or nil if the items aren't uniform.
func packUniformArray(payload []byte, count int) []byte {
	if count < 2 || count > math.MaxUint16 || len(payload) < 1 {
		return nil
	}
	switch first := payload[0]; {
	case first == markerUniformNumArray1 || first == markerUniformNumArray2:
		return packNestedUniformArray(payload, count)
	case nodeTypeOf(first) == NodeTypeNumber:
		return packNumberArray(payload, count)
	case uniformItemSize(first) > 0:
		return packTypedArray(payload, count, first)
	}
	return nil
}

func packNumberArray(payload []byte, count int) []byte {
	numbers := make([]Number, 0, count)
	var lo, hi int64
	allInts, exactInts := true, true
	for off := 0; off < len(payload); {
		m := payload[off]
		if nodeTypeOf(m) != NodeTypeNumber {
			return nil
		}
		n, err := valueByteLength(payload, off)
		if err != nil {
			return nil
		}
		v, err := decodeNumber(m, payload[off+1:])
		if err != nil {
			return nil
		}
		if i, ok := v.exactInt64(); ok && m != markerNumberDouble {
			if len(numbers) == 0 || i < lo {
				lo = i
			}
			if len(numbers) == 0 || i > hi {
				hi = i
			}
			if i > maxExactFloatInt || i < -maxExactFloatInt {
				exactInts = false
			}
		} else {
			allInts = false
		}
		numbers = append(numbers, v)
		off += n
	}
	if len(numbers) != count {
		return nil
	}

	var item byte
	switch {
	case !allInts:
		if !exactInts {
			return nil
		}
		item = markerNumberDouble
	case lo >= 0 && hi <= math.MaxUint8:
		item = markerNumberUInt8
	case lo >= math.MinInt16 && hi <= math.MaxInt16:
		item = markerNumberInt16
	case lo >= math.MinInt32 && hi <= math.MaxInt32:
		item = markerNumberInt32
	default:
		item = markerNumberInt64
	}

	dst := appendUniformHeader(make([]byte, 0, 4+count*uniformItemSize(item)), item, count)
	for _, v := range numbers {
		dst = appendPackedNumber(dst, item, v)
	}
	return dst
}

func packTypedArray(payload []byte, count int, item byte) []byte {
	size := uniformItemSize(item)
	if len(payload) != count*(1+size) {
		return nil
	}
	dst := appendUniformHeader(make([]byte, 0, 4+count*size), item, count)
	for off := 0; off < len(payload); off += 1 + size {
		if payload[off] != item {
			return nil
		}
		dst = append(dst, payload[off+1:off+1+size]...)
	}
	return dst
}

func packNestedUniformArray(payload []byte, count int) []byte {
	var first uniformArray
	inner := make([][]byte, 0, count)
	for off := 0; off < len(payload); {
		m := payload[off]
		if m != markerUniformNumArray1 && m != markerUniformNumArray2 {
			return nil
		}
		u, err := readUniformArray(payload, off)
		if err != nil || u.length() > len(payload)-off {
			return nil
		}
		if len(inner) == 0 {
			first = u
		} else if u.itemMarker != first.itemMarker || u.count != first.count {
			return nil
		}
		inner = append(inner, payload[off+u.prefix:off+u.length()])
		off += u.length()
	}
	if len(inner) != count {
		return nil
	}
	dst := appendNestedUniformHeader(
		make([]byte, 0, 7+count*first.count*first.itemSize),
		first.itemMarker, first.count, count,
	)
	for _, items := range inner {
		dst = append(dst, items...)
	}
	return dst
}
