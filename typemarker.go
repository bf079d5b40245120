package jsonnav

import (
	"encoding/binary"

	"github.com/romshark/jsonnav/internal/packedstr"
)

// Type markers of the binary encoding.
// Ranges are half-open: [min, max).
const (
	markerLiteralIntMin = 0x00
	markerLiteralIntMax = 0x20

	markerSystemString1Min = 0x20
	markerSystemString1Max = 0x40
	markerUserString1Min   = 0x40
	markerUserString1Max   = 0x60
	markerSystemString2Min = 0x60
	markerSystemString2Max = 0x68
	markerUserString2Min   = 0x68
	markerUserString2Max   = 0x70

	markerLowerHexString        = 0x70
	markerUpperHexString        = 0x71
	markerDateTimeString        = 0x72
	markerPacked4BitString      = 0x73
	markerPacked5BitString      = 0x74
	markerPacked6BitString      = 0x75
	markerPacked7BitString1     = 0x76
	markerPacked7BitString2     = 0x77
	markerLowerGuidString       = 0x78
	markerUpperGuidString       = 0x79
	markerQuotedLowerGuidString = 0x7A

	markerEncodedLengthStringMin = 0x80
	markerEncodedLengthStringMax = 0xC0

	markerString1ByteLength = 0xC0
	markerString2ByteLength = 0xC1
	markerString4ByteLength = 0xC2
	markerReferenceString1  = 0xC3
	markerReferenceString2  = 0xC4
	markerReferenceString3  = 0xC5
	markerReferenceString4  = 0xC6

	markerNumberUInt8  = 0xC8
	markerNumberInt16  = 0xC9
	markerNumberInt32  = 0xCA
	markerNumberInt64  = 0xCB
	markerNumberDouble = 0xCC

	markerNull               = 0xD0
	markerFalse              = 0xD1
	markerTrue               = 0xD2
	markerGuid               = 0xD3
	markerBinary1ByteLength  = 0xD4
	markerBinary2ByteLength  = 0xD5
	markerBinary4ByteLength  = 0xD6
	markerInt8               = 0xD8
	markerInt16              = 0xD9
	markerInt32              = 0xDA
	markerInt64              = 0xDB
	markerUInt32             = 0xDC
	markerFloat32            = 0xDD
	markerFloat64            = 0xDE
	markerEmptyArray         = 0xE0
	markerSingleItemArray    = 0xE1
	markerArray1ByteLength   = 0xE2
	markerArray2ByteLength   = 0xE3
	markerArray4ByteLength   = 0xE4
	markerArray1ByteCount    = 0xE5
	markerArray2ByteCount    = 0xE6
	markerArray4ByteCount    = 0xE7
	markerEmptyObject        = 0xE8
	markerSinglePropertyObj  = 0xE9
	markerObject1ByteLength  = 0xEA
	markerObject2ByteLength  = 0xEB
	markerObject4ByteLength  = 0xEC
	markerObject1ByteCount   = 0xED
	markerObject2ByteCount   = 0xEE
	markerObject4ByteCount   = 0xEF
	markerUniformNumArray1   = 0xF0
	markerUniformNumArray2   = 0xF1
	markerUniformArrArray1   = 0xF2
	markerUniformArrArray2   = 0xF3
	markerInvalid            = 0xFF
	maxEncodedLengthString   = markerEncodedLengthStringMax - markerEncodedLengthStringMin - 1
	maxLiteralInt            = markerLiteralIntMax - markerLiteralIntMin - 1
	objectMarkerOffset       = markerEmptyObject - markerEmptyArray
	maxOneByteStringRefIndex = markerSystemString1Max - markerSystemString1Min - 1
)

// Value length codes. Positive values are fixed total lengths,
// zero marks invalid markers and negative values tell how to compute
// the length from the following bytes.
const (
	lengthInvalid = 0

	// lengthPrefix1, lengthPrefix2 and lengthPrefix4 are followed by a
	// 1, 2 or 4 byte payload length.
	lengthPrefix1 = -1
	lengthPrefix2 = -2
	lengthPrefix4 = -4

	// lengthPrefixCount1, lengthPrefixCount2 and lengthPrefixCount4 are
	// followed by a payload length and an item count of 1, 2 or 4 bytes each.
	lengthPrefixCount1 = -5
	lengthPrefixCount2 = -6
	lengthPrefixCount4 = -8

	// lengthSingleChild is followed by exactly one value
	// (or one name and one value).
	lengthSingleChild = -9

	// lengthCompressedString is followed by a compressed string header.
	lengthCompressedString = -10

	// lengthUniformArray is followed by a uniform array header.
	lengthUniformArray = -11
)

// String length codes. Non-negative values are lengths encoded in the marker.
const (
	stringLengthNotString  = -1
	stringLengthSystem1    = -2
	stringLengthSystem2    = -3
	stringLengthUser1      = -4
	stringLengthUser2      = -5
	stringLengthPrefix1    = -6
	stringLengthPrefix2    = -7
	stringLengthPrefix4    = -8
	stringLengthReference  = -9
	stringLengthCompressed = -10
)

// Lookup tables indexed by type marker. All of them are total over
// the 256 marker values.
var (
	nodeTypes         [256]NodeType
	valueLengths      [256]int32
	stringLengths     [256]int32
	firstChildOffsets [256]uint8
	packedKinds       [256]packedstr.Kind

	// compressedStringMarkers is the inverse of packedKinds.
	compressedStringMarkers [packedstr.QuotedLowerGuid + 1]byte
)

var packedKindMarkers = [...]struct {
	marker byte
	kind   packedstr.Kind
}{
	{markerLowerHexString, packedstr.LowerHex},
	{markerUpperHexString, packedstr.UpperHex},
	{markerDateTimeString, packedstr.DateTime},
	{markerPacked4BitString, packedstr.Packed4},
	{markerPacked5BitString, packedstr.Packed5},
	{markerPacked6BitString, packedstr.Packed6},
	{markerPacked7BitString1, packedstr.Packed7},
	{markerPacked7BitString2, packedstr.Packed7Long},
	{markerLowerGuidString, packedstr.LowerGuid},
	{markerUpperGuidString, packedstr.UpperGuid},
	{markerQuotedLowerGuidString, packedstr.QuotedLowerGuid},
}

func init() {
	for m := 0; m < 256; m++ {
		stringLengths[m] = stringLengthNotString
	}
	setRange := func(min, max int, t NodeType, length, strLength int32) {
		for m := min; m < max; m++ {
			nodeTypes[m] = t
			valueLengths[m] = length
			if strLength != stringLengthNotString {
				stringLengths[m] = strLength
			}
		}
	}
	set := func(m int, t NodeType, length int32) { setRange(m, m+1, t, length, stringLengthNotString) }
	setString := func(m int, length, strLength int32) { setRange(m, m+1, NodeTypeString, length, strLength) }

	setRange(markerLiteralIntMin, markerLiteralIntMax, NodeTypeNumber, 1, stringLengthNotString)
	setRange(markerSystemString1Min, markerSystemString1Max, NodeTypeString, 1, stringLengthSystem1)
	setRange(markerUserString1Min, markerUserString1Max, NodeTypeString, 1, stringLengthUser1)
	setRange(markerSystemString2Min, markerSystemString2Max, NodeTypeString, 2, stringLengthSystem2)
	setRange(markerUserString2Min, markerUserString2Max, NodeTypeString, 2, stringLengthUser2)

	for _, p := range packedKindMarkers {
		setString(int(p.marker), lengthCompressedString, stringLengthCompressed)
		packedKinds[p.marker] = p.kind
		compressedStringMarkers[p.kind] = p.marker
	}

	for m := markerEncodedLengthStringMin; m < markerEncodedLengthStringMax; m++ {
		l := int32(m - markerEncodedLengthStringMin)
		setString(m, 1+l, l)
	}
	setString(markerString1ByteLength, lengthPrefix1, stringLengthPrefix1)
	setString(markerString2ByteLength, lengthPrefix2, stringLengthPrefix2)
	setString(markerString4ByteLength, lengthPrefix4, stringLengthPrefix4)
	setString(markerReferenceString1, 2, stringLengthReference)
	setString(markerReferenceString2, 3, stringLengthReference)
	setString(markerReferenceString3, 4, stringLengthReference)
	setString(markerReferenceString4, 5, stringLengthReference)

	set(markerNumberUInt8, NodeTypeNumber, 2)
	set(markerNumberInt16, NodeTypeNumber, 3)
	set(markerNumberInt32, NodeTypeNumber, 5)
	set(markerNumberInt64, NodeTypeNumber, 9)
	set(markerNumberDouble, NodeTypeNumber, 9)

	set(markerNull, NodeTypeNull, 1)
	set(markerFalse, NodeTypeFalse, 1)
	set(markerTrue, NodeTypeTrue, 1)
	set(markerGuid, NodeTypeGuid, 17)
	set(markerBinary1ByteLength, NodeTypeBinary, lengthPrefix1)
	set(markerBinary2ByteLength, NodeTypeBinary, lengthPrefix2)
	set(markerBinary4ByteLength, NodeTypeBinary, lengthPrefix4)
	set(markerInt8, NodeTypeInt8, 2)
	set(markerInt16, NodeTypeInt16, 3)
	set(markerInt32, NodeTypeInt32, 5)
	set(markerInt64, NodeTypeInt64, 9)
	set(markerUInt32, NodeTypeUInt32, 5)
	set(markerFloat32, NodeTypeFloat32, 5)
	set(markerFloat64, NodeTypeFloat64, 9)

	for _, c := range [...]struct {
		t    NodeType
		base int
	}{
		{NodeTypeArray, markerEmptyArray},
		{NodeTypeObject, markerEmptyObject},
	} {
		set(c.base, c.t, 1)
		set(c.base+1, c.t, lengthSingleChild)
		set(c.base+2, c.t, lengthPrefix1)
		set(c.base+3, c.t, lengthPrefix2)
		set(c.base+4, c.t, lengthPrefix4)
		set(c.base+5, c.t, lengthPrefixCount1)
		set(c.base+6, c.t, lengthPrefixCount2)
		set(c.base+7, c.t, lengthPrefixCount4)
		for i, o := range [...]uint8{1, 1, 2, 3, 5, 3, 5, 9} {
			firstChildOffsets[c.base+i] = o
		}
	}

	set(markerUniformNumArray1, NodeTypeArray, lengthUniformArray)
	set(markerUniformNumArray2, NodeTypeArray, lengthUniformArray)
	set(markerUniformArrArray1, NodeTypeArray, lengthUniformArray)
	set(markerUniformArrArray2, NodeTypeArray, lengthUniformArray)
}

// nodeTypeOf returns the node type of a value starting with marker m.
// Invalid markers yield NodeTypeUnknown.
func nodeTypeOf(m byte) NodeType { return nodeTypes[m] }

// encodedStringLength returns the string length encoded in marker m
// or one of the stringLength* codes.
func encodedStringLength(m byte) int32 { return stringLengths[m] }

// firstChildOffset returns the offset of the first child relative to the
// marker of a generic array or object. Uniform arrays return 0 since their
// item offset depends on the header.
func firstChildOffset(m byte) int { return int(firstChildOffsets[m]) }

// isUniformArray returns true for the packed number array markers.
// isUserString returns true for markers referencing a user dictionary entry.
func isUserString(m byte) bool {
	l := stringLengths[m]
	return l == stringLengthUser1 || l == stringLengthUser2
}

func isUniformArray(m byte) bool {
	return m >= markerUniformNumArray1 && m <= markerUniformArrArray2
}

// valueByteLength returns the total number of bytes occupied by the value
// starting at buf[off] and makes sure buf is long enough to hold it.
func valueByteLength(buf []byte, off int) (int, error) {
	return nestedValueByteLength(buf, off, 0)
}

// nestedValueByteLength is valueByteLength for a value enclosed in depth
// single child containers.
func nestedValueByteLength(buf []byte, off, depth int) (int, error) {
	if off >= len(buf) {
		return 0, errAt(ErrBufferTooShort, off)
	}
	m := buf[off]
	var n int
	switch l := valueLengths[m]; l {
	case lengthInvalid:
		return 0, errAt(ErrInvalidTypeMarker, off)
	case lengthPrefix1, lengthPrefix2, lengthPrefix4:
		w := int(-l)
		p, err := readUint(buf, off+1, w)
		if err != nil {
			return 0, err
		}
		n = 1 + w + p
	case lengthPrefixCount1, lengthPrefixCount2, lengthPrefixCount4:
		w := int(-l) - 4
		p, err := readUint(buf, off+1, w)
		if err != nil {
			return 0, err
		}
		n = 1 + 2*w + p
	case lengthSingleChild:
		if depth >= MaxNestingDepth {
			return 0, errAt(ErrMaxNestingExceeded, off)
		}
		c, err := nestedValueByteLength(buf, off+1, depth+1)
		if err != nil {
			return 0, err
		}
		n = 1 + c
		if nodeTypes[m] == NodeTypeObject {
			v, err := nestedValueByteLength(buf, off+n, depth+1)
			if err != nil {
				return 0, err
			}
			n += v
		}
	case lengthCompressedString:
		p, err := packedstr.PayloadLength(packedKinds[m], buf[off+1:])
		if err != nil {
			return 0, errAt(ErrBufferTooShort, off)
		}
		n = 1 + p
	case lengthUniformArray:
		u, err := readUniformArray(buf, off)
		if err != nil {
			return 0, err
		}
		n = u.length()
	default:
		n = int(l)
	}
	if n < 0 || n > len(buf)-off {
		return 0, errAt(ErrBufferTooShort, off)
	}
	return n, nil
}

// readUint reads a little-endian unsigned integer of width w at buf[off].
func readUint(buf []byte, off, w int) (int, error) {
	if off < 0 || off+w > len(buf) {
		return 0, errAt(ErrBufferTooShort, off)
	}
	switch w {
	case 1:
		return int(buf[off]), nil
	case 2:
		return int(binary.LittleEndian.Uint16(buf[off:])), nil
	case 3:
		return int(buf[off]) | int(buf[off+1])<<8 | int(buf[off+2])<<16, nil
	}
	v := binary.LittleEndian.Uint32(buf[off:])
	if uint64(v) > uint64(maxInt) {
		return 0, errAt(ErrBufferTooShort, off)
	}
	return int(v), nil
}

const maxInt = int(^uint(0) >> 1)

// containerCount returns the item count declared in the prefix of a
// container and whether the prefix declares one.
func containerCount(buf []byte, off int) (int, bool) {
	m := buf[off]
	switch valueLengths[m] {
	case lengthPrefixCount1:
		c, err := readUint(buf, off+2, 1)
		return c, err == nil
	case lengthPrefixCount2:
		c, err := readUint(buf, off+3, 2)
		return c, err == nil
	case lengthPrefixCount4:
		c, err := readUint(buf, off+5, 4)
		return c, err == nil
	case lengthSingleChild:
		return 1, true
	}
	if m == markerEmptyArray || m == markerEmptyObject {
		return 0, true
	}
	return 0, false
}
