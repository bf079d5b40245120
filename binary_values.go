package jsonnav

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/google/uuid"

	"github.com/romshark/jsonnav/internal/packedstr"
)

// appendBinaryString appends the string value starting at buf[off] to dst.
func appendBinaryString(dst, buf []byte, off int, dict *Dictionary) ([]byte, error) {
	return appendBinaryStringRef(dst, buf, off, dict, true)
}

func appendBinaryStringRef(
	dst, buf []byte, off int, dict *Dictionary, followReference bool,
) ([]byte, error) {
	if off >= len(buf) {
		return dst, errAt(ErrBufferTooShort, off)
	}
	b, ok, err := binaryStringBytes(buf, off, dict)
	if err != nil {
		return dst, err
	}
	if ok {
		return append(dst, b...), nil
	}
	m := buf[off]
	if encodedStringLength(m) == stringLengthCompressed {
		dst, err := packedstr.Decode(dst, packedKinds[m], buf[off+1:])
		if err != nil {
			return dst, errAt(ErrBufferTooShort, off)
		}
		return dst, nil
	}
	if !followReference {
		return dst, errAt(ErrInvalidTypeMarker, off)
	}
	target, err := readUint(buf, off+1, int(m-markerReferenceString1)+1)
	if err != nil {
		return dst, err
	}
	if target >= off {
		// Only strings written earlier can be referenced.
		return dst, errAt(ErrInvalidTypeMarker, off)
	}
	return appendBinaryStringRef(dst, buf, target, dict, false)
}

// bufferedBinaryString returns the string at buf[off] without copying
// if it's stored verbatim in buf or in a dictionary.
func bufferedBinaryString(buf []byte, off int, dict *Dictionary) ([]byte, bool) {
	if off >= len(buf) {
		return nil, false
	}
	s, ok, err := binaryStringBytes(buf, off, dict)
	return s, ok && err == nil
}

// binaryStringBytes returns the bytes of literal and dictionary strings.
// ok is false for compressed and reference strings.
func binaryStringBytes(buf []byte, off int, dict *Dictionary) (s []byte, ok bool, err error) {
	m := buf[off]
	var start, n int
	switch l := encodedStringLength(m); l {
	case stringLengthNotString:
		return nil, false, errAt(ErrTypeMismatch, off)
	case stringLengthSystem1:
		s, _ := systemStringAt(int(m - markerSystemString1Min))
		return stringBytes(s), true, nil
	case stringLengthSystem2:
		if off+1 >= len(buf) {
			return nil, false, errAt(ErrBufferTooShort, off)
		}
		s, ok := systemStringAt(int(m-markerSystemString2Min)<<8 | int(buf[off+1]))
		if !ok {
			return nil, false, errAt(ErrDictionaryIndexOutOfRange, off)
		}
		return stringBytes(s), true, nil
	case stringLengthUser1, stringLengthUser2:
		if dict == nil {
			return nil, false, errAt(ErrNoDictionary, off)
		}
		i := int(m - markerUserString1Min)
		if l == stringLengthUser2 {
			if off+1 >= len(buf) {
				return nil, false, errAt(ErrBufferTooShort, off)
			}
			i = int(m-markerUserString2Min)<<8 | int(buf[off+1])
		}
		s, ok := dict.TryGetStringAtIndex(i)
		if !ok {
			return nil, false, errAt(ErrDictionaryIndexOutOfRange, off)
		}
		return s, true, nil
	case stringLengthPrefix1, stringLengthPrefix2, stringLengthPrefix4:
		w := 1
		switch l {
		case stringLengthPrefix2:
			w = 2
		case stringLengthPrefix4:
			w = 4
		}
		if n, err = readUint(buf, off+1, w); err != nil {
			return nil, false, err
		}
		start = off + 1 + w
	case stringLengthReference, stringLengthCompressed:
		return nil, false, nil
	default:
		start, n = off+1, int(l)
	}
	if n > len(buf)-start {
		return nil, false, errAt(ErrBufferTooShort, off)
	}
	return buf[start : start+n : start+n], true, nil
}

// stringBytes returns the bytes of s without copying.
// The result must not be modified.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// binaryStringEquals compares the string at buf[off] to s.
func binaryStringEquals(
	buf []byte, off int, dict *Dictionary, s string, scratch []byte,
) (bool, []byte, error) {
	b, ok, err := binaryStringBytes(buf, off, dict)
	if err != nil {
		return false, scratch, err
	}
	if !ok {
		if scratch, err = appendBinaryString(scratch[:0], buf, off, dict); err != nil {
			return false, scratch, err
		}
		b = scratch
	}
	return string(b) == s, scratch, nil
}

// hasStringReferences returns true if the value at buf[off] is or contains
// a string reference, which is only valid at its original offset.
// If user is true, user string references count as well.
func hasStringReferences(buf []byte, off int, user bool) (bool, error) {
	return nestedStringReferences(buf, off, user, 0)
}

func nestedStringReferences(buf []byte, off int, user bool, depth int) (bool, error) {
	m := buf[off]
	switch {
	case encodedStringLength(m) == stringLengthReference:
		return true, nil
	case user && isUserString(m):
		return true, nil
	case isUniformArray(m):
		return false, nil
	}
	switch nodeTypeOf(m) {
	case NodeTypeArray, NodeTypeObject:
	default:
		return false, nil
	}
	if depth >= MaxNestingDepth {
		return false, errAt(ErrMaxNestingExceeded, off)
	}
	n, err := valueByteLength(buf, off)
	if err != nil {
		return false, err
	}
	for i, end := off+firstChildOffset(m), off+n; i < end; {
		if ok, err := nestedStringReferences(buf, i, user, depth+1); err != nil || ok {
			return ok, err
		}
		l, err := valueByteLength(buf, i)
		if err != nil {
			return false, err
		}
		i += l
	}
	return false, nil
}

// payload returns the n bytes of a fixed size value if m is the wanted marker.
func payload(m, want byte, p []byte, n int) ([]byte, error) {
	if m != want {
		return nil, ErrTypeMismatch
	}
	if len(p) < n {
		return nil, ErrBufferTooShort
	}
	return p[:n], nil
}

// decodeNumber decodes a value of node type Number.
// p is the payload following marker m.
func decodeNumber(m byte, p []byte) (Number, error) {
	if m < markerLiteralIntMax {
		return NumberFromInt64(int64(m)), nil
	}
	n := uniformItemSize(m)
	if n == 0 || nodeTypeOf(m) != NodeTypeNumber {
		return Number{}, ErrTypeMismatch
	}
	if len(p) < n {
		return Number{}, ErrBufferTooShort
	}
	switch m {
	case markerNumberUInt8:
		return NumberFromInt64(int64(p[0])), nil
	case markerNumberInt16:
		return NumberFromInt64(int64(int16(binary.LittleEndian.Uint16(p)))), nil
	case markerNumberInt32:
		return NumberFromInt64(int64(int32(binary.LittleEndian.Uint32(p)))), nil
	case markerNumberInt64:
		return NumberFromInt64(int64(binary.LittleEndian.Uint64(p))), nil
	}
	return NumberFromFloat64(math.Float64frombits(binary.LittleEndian.Uint64(p))), nil
}

func decodeInt8(m byte, p []byte) (int8, error) {
	b, err := payload(m, markerInt8, p, 1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func decodeInt16(m byte, p []byte) (int16, error) {
	b, err := payload(m, markerInt16, p, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func decodeInt32(m byte, p []byte) (int32, error) {
	b, err := payload(m, markerInt32, p, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func decodeInt64(m byte, p []byte) (int64, error) {
	b, err := payload(m, markerInt64, p, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func decodeUInt32(m byte, p []byte) (uint32, error) {
	b, err := payload(m, markerUInt32, p, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func decodeFloat32(m byte, p []byte) (float32, error) {
	b, err := payload(m, markerFloat32, p, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func decodeFloat64(m byte, p []byte) (float64, error) {
	b, err := payload(m, markerFloat64, p, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func decodeGuid(m byte, p []byte) (uuid.UUID, error) {
	b, err := payload(m, markerGuid, p, 16)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.UUID(b), nil
}

// decodeBinary returns the bytes of a binary value without copying.
func decodeBinary(m byte, p []byte) ([]byte, error) {
	var w int
	switch m {
	case markerBinary1ByteLength:
		w = 1
	case markerBinary2ByteLength:
		w = 2
	case markerBinary4ByteLength:
		w = 4
	default:
		return nil, ErrTypeMismatch
	}
	n, err := readUint(p, 0, w)
	if err != nil || n > len(p)-w {
		return nil, ErrBufferTooShort
	}
	return p[w : w+n : w+n], nil
}
