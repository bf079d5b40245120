package jsonnav

import (
	"encoding/binary"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/romshark/jsonnav/internal/packedstr"
)

// binaryWriter writes the binary encoding. Container prefixes are
// reserved when a container starts and patched when it ends, moving
// the payload if the final prefix has a different size.
type binaryWriter struct {
	buf    []byte
	state  tokenState
	frames []binaryWriterFrame

	// reserve is the prefix size reserved for every container.
	reserve int

	dict            *Dictionary
	logger          *slog.Logger
	serializeCount  bool
	uniformArrays   bool
	compressStrings bool
	dictFullLogged  bool
}

type binaryWriterFrame struct {
	// offset is the offset of the reserved prefix.
	offset int

	// count is the number of items or properties written so far.
	count  int
	object bool
}

var zeros [9]byte

var _ Writer = new(binaryWriter)

// NewBinaryWriter creates a writer for the binary encoding.
// options default to DefaultWriteOptions if nil.
func NewBinaryWriter(options *WriteOptions) Writer {
	return newBinaryWriter(options)
}

func newBinaryWriter(options *WriteOptions) *binaryWriter {
	if options == nil {
		options = DefaultWriteOptions
	}
	w := &binaryWriter{
		buf:             append(make([]byte, 0, 64), BinaryFormatMarker),
		reserve:         3,
		dict:            options.Dictionary,
		logger:          options.Logger,
		serializeCount:  options.SerializeCount,
		uniformArrays:   options.UniformArrays,
		compressStrings: options.CompressStrings,
	}
	if w.serializeCount {
		w.reserve = 5
	}
	return w
}

func (w *binaryWriter) Format() Format { return FormatBinary }

// begin registers token t and counts it as a child of the current container.
func (w *binaryWriter) begin(t TokenType) error {
	if err := w.state.register(t); err != nil {
		return errAt(err, len(w.buf))
	}
	w.countChild(t)
	return nil
}

// beginComplete is begin for a complete value written in one piece.
func (w *binaryWriter) beginComplete(t TokenType) error {
	if err := w.state.registerComplete(t); err != nil {
		return errAt(err, len(w.buf))
	}
	w.countChild(t)
	return nil
}

func (w *binaryWriter) countChild(t TokenType) {
	if len(w.frames) < 1 {
		return
	}
	f := &w.frames[len(w.frames)-1]
	if t == TokenTypeFieldName || (t.isValue() && !f.object) {
		f.count++
	}
}

func (w *binaryWriter) WriteObjectStart() error { return w.start(TokenTypeBeginObject) }
func (w *binaryWriter) WriteObjectEnd() error   { return w.end(TokenTypeEndObject) }
func (w *binaryWriter) WriteArrayStart() error  { return w.start(TokenTypeBeginArray) }
func (w *binaryWriter) WriteArrayEnd() error    { return w.end(TokenTypeEndArray) }

func (w *binaryWriter) start(t TokenType) error {
	if err := w.begin(t); err != nil {
		return err
	}
	w.frames = append(w.frames, binaryWriterFrame{
		offset: len(w.buf),
		object: t == TokenTypeBeginObject,
	})
	w.buf = append(w.buf, zeros[:w.reserve]...)
	return nil
}

func (w *binaryWriter) end(t TokenType) error {
	if err := w.state.register(t); err != nil {
		return errAt(err, len(w.buf))
	}
	f := w.frames[len(w.frames)-1]
	w.frames = w.frames[:len(w.frames)-1]
	payload := w.buf[f.offset+w.reserve:]

	if !f.object && w.uniformArrays && f.count > 1 {
		packed := packUniformArray(payload, f.count)
		if packed != nil &&
			len(packed) < len(payload)+containerPrefixLength(len(payload), f.count, w.serializeCount) {
			if w.logger != nil {
				w.logger.Debug("packed uniform array",
					slog.Int("offset", f.offset),
					slog.Int("items", f.count),
					slog.Int("size", len(packed)),
					slog.Int("unpacked_size", len(payload)))
			}
			w.buf = append(w.buf[:f.offset], packed...)
			return nil
		}
	}

	base := byte(markerEmptyArray)
	if f.object {
		base = markerEmptyObject
	}
	var prefix [9]byte
	n := putContainerPrefix(prefix[:], base, len(payload), f.count, w.serializeCount)
	w.replacePrefix(f.offset, prefix[:n])
	return nil
}

// replacePrefix replaces the reserved prefix at off.
func (w *binaryWriter) replacePrefix(off int, prefix []byte) {
	start := off + w.reserve
	switch d := len(prefix) - w.reserve; {
	case d > 0:
		w.buf = append(w.buf, zeros[:d]...)
		copy(w.buf[start+d:], w.buf[start:len(w.buf)-d])
	case d < 0:
		copy(w.buf[start+d:], w.buf[start:])
		w.buf = w.buf[:len(w.buf)+d]
	}
	copy(w.buf[off:], prefix)
}

// containerPrefixLength returns the size of the prefix
// putContainerPrefix writes.
func containerPrefixLength(payload, count int, withCount bool) int {
	var p [9]byte
	return putContainerPrefix(p[:], markerEmptyArray, payload, count, withCount)
}

// putContainerPrefix writes the smallest prefix for a container with
// base marker base into dst and returns its length.
func putContainerPrefix(dst []byte, base byte, payload, count int, withCount bool) int {
	switch {
	case count == 0:
		dst[0] = base
		return 1
	case count == 1:
		dst[0] = base + 1
		return 1
	case withCount:
		switch {
		case payload <= math.MaxUint8 && count <= math.MaxUint8:
			dst[0], dst[1], dst[2] = base+5, byte(payload), byte(count)
			return 3
		case payload <= math.MaxUint16 && count <= math.MaxUint16:
			dst[0] = base + 6
			binary.LittleEndian.PutUint16(dst[1:], uint16(payload))
			binary.LittleEndian.PutUint16(dst[3:], uint16(count))
			return 5
		}
		dst[0] = base + 7
		binary.LittleEndian.PutUint32(dst[1:], uint32(payload))
		binary.LittleEndian.PutUint32(dst[5:], uint32(count))
		return 9
	case payload <= math.MaxUint8:
		dst[0], dst[1] = base+2, byte(payload)
		return 2
	case payload <= math.MaxUint16:
		dst[0] = base + 3
		binary.LittleEndian.PutUint16(dst[1:], uint16(payload))
		return 3
	}
	dst[0] = base + 4
	binary.LittleEndian.PutUint32(dst[1:], uint32(payload))
	return 5
}

func (w *binaryWriter) WriteFieldName(name string) error {
	if err := w.begin(TokenTypeFieldName); err != nil {
		return err
	}
	w.appendString(name)
	return nil
}

func (w *binaryWriter) WriteStringValue(s string) error {
	if err := w.begin(TokenTypeString); err != nil {
		return err
	}
	w.appendString(s)
	return nil
}

// appendString appends s in its smallest available form.
func (w *binaryWriter) appendString(s string) {
	if i, ok := systemStringIndex(s); ok {
		w.buf = appendStringReference(w.buf, markerSystemString1Min, markerSystemString2Min, i)
		return
	}
	if w.dict != nil {
		if i, ok := w.dict.tryAdd(s); ok {
			w.buf = appendStringReference(w.buf, markerUserString1Min, markerUserString2Min, i)
			return
		}
		if w.dict.Full() && !w.dictFullLogged && w.logger != nil {
			w.dictFullLogged = true
			w.logger.Debug("user dictionary full, writing strings inline",
				slog.Int("entries", w.dict.Len()))
		}
	}
	if w.compressStrings {
		b := stringBytes(s)
		k, size := packedstr.Choose(b)
		if k != packedstr.None && 1+size < literalStringLength(len(s)) {
			w.buf = append(w.buf, compressedStringMarkers[k])
			w.buf = packedstr.Append(w.buf, k, b)
			return
		}
	}
	w.buf = appendLiteralString(w.buf, s)
}

func appendStringReference(dst []byte, oneByteMin, twoByteMin byte, i int) []byte {
	if i <= maxOneByteStringRefIndex {
		return append(dst, oneByteMin+byte(i))
	}
	return append(dst, twoByteMin+byte(i>>8), byte(i))
}

// literalStringLength returns the encoded size of an uncompressed
// string of n bytes.
func literalStringLength(n int) int {
	switch {
	case n <= maxEncodedLengthString:
		return 1 + n
	case n <= math.MaxUint8:
		return 2 + n
	case n <= math.MaxUint16:
		return 3 + n
	}
	return 5 + n
}

func appendLiteralString(dst []byte, s string) []byte {
	switch n := len(s); {
	case n <= maxEncodedLengthString:
		dst = append(dst, markerEncodedLengthStringMin+byte(n))
	case n <= math.MaxUint8:
		dst = append(dst, markerString1ByteLength, byte(n))
	case n <= math.MaxUint16:
		dst = append(dst, markerString2ByteLength)
		dst = binary.LittleEndian.AppendUint16(dst, uint16(n))
	default:
		dst = append(dst, markerString4ByteLength)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(n))
	}
	return append(dst, s...)
}

func (w *binaryWriter) WriteNumberValue(n Number) error {
	if err := w.begin(TokenTypeNumber); err != nil {
		return err
	}
	w.buf = appendBinaryNumber(w.buf, n)
	return nil
}

// appendBinaryNumber appends n in the narrowest form holding it exactly.
func appendBinaryNumber(dst []byte, n Number) []byte {
	v, ok := n.exactInt64()
	switch {
	case !ok:
		dst = append(dst, markerNumberDouble)
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(n.Float64()))
	case v >= 0 && v <= maxLiteralInt:
		return append(dst, markerLiteralIntMin+byte(v))
	case v >= 0 && v <= math.MaxUint8:
		return append(dst, markerNumberUInt8, byte(v))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		dst = append(dst, markerNumberInt16)
		return binary.LittleEndian.AppendUint16(dst, uint16(v))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		dst = append(dst, markerNumberInt32)
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	}
	dst = append(dst, markerNumberInt64)
	return binary.LittleEndian.AppendUint64(dst, uint64(v))
}

func (w *binaryWriter) WriteBoolValue(v bool) error {
	t, m := TokenTypeFalse, byte(markerFalse)
	if v {
		t, m = TokenTypeTrue, markerTrue
	}
	if err := w.begin(t); err != nil {
		return err
	}
	w.buf = append(w.buf, m)
	return nil
}

func (w *binaryWriter) WriteNullValue() error {
	if err := w.begin(TokenTypeNull); err != nil {
		return err
	}
	w.buf = append(w.buf, markerNull)
	return nil
}

func (w *binaryWriter) WriteInt8Value(v int8) error {
	if err := w.begin(TokenTypeInt8); err != nil {
		return err
	}
	w.buf = append(w.buf, markerInt8, byte(v))
	return nil
}

func (w *binaryWriter) WriteInt16Value(v int16) error {
	if err := w.begin(TokenTypeInt16); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint16(append(w.buf, markerInt16), uint16(v))
	return nil
}

func (w *binaryWriter) WriteInt32Value(v int32) error {
	if err := w.begin(TokenTypeInt32); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint32(append(w.buf, markerInt32), uint32(v))
	return nil
}

func (w *binaryWriter) WriteInt64Value(v int64) error {
	if err := w.begin(TokenTypeInt64); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint64(append(w.buf, markerInt64), uint64(v))
	return nil
}

func (w *binaryWriter) WriteUInt32Value(v uint32) error {
	if err := w.begin(TokenTypeUInt32); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint32(append(w.buf, markerUInt32), v)
	return nil
}

func (w *binaryWriter) WriteFloat32Value(v float32) error {
	if err := w.begin(TokenTypeFloat32); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint32(append(w.buf, markerFloat32), math.Float32bits(v))
	return nil
}

func (w *binaryWriter) WriteFloat64Value(v float64) error {
	if err := w.begin(TokenTypeFloat64); err != nil {
		return err
	}
	w.buf = binary.LittleEndian.AppendUint64(append(w.buf, markerFloat64), math.Float64bits(v))
	return nil
}

func (w *binaryWriter) WriteGuidValue(v uuid.UUID) error {
	if err := w.begin(TokenTypeGuid); err != nil {
		return err
	}
	w.buf = append(append(w.buf, markerGuid), v[:]...)
	return nil
}

func (w *binaryWriter) WriteBinaryValue(v []byte) error {
	if err := w.begin(TokenTypeBinary); err != nil {
		return err
	}
	switch n := len(v); {
	case n <= math.MaxUint8:
		w.buf = append(w.buf, markerBinary1ByteLength, byte(n))
	case n <= math.MaxUint16:
		w.buf = binary.LittleEndian.AppendUint16(append(w.buf, markerBinary2ByteLength), uint16(n))
	default:
		w.buf = binary.LittleEndian.AppendUint32(append(w.buf, markerBinary4ByteLength), uint32(n))
	}
	w.buf = append(w.buf, v...)
	return nil
}

// writeRaw appends an encoded value of type t as is.
// raw must not contain string references.
func (w *binaryWriter) writeRaw(t TokenType, raw []byte) error {
	if err := w.beginComplete(t); err != nil {
		return err
	}
	w.buf = append(w.buf, raw...)
	return nil
}

func (w *binaryWriter) Result() ([]byte, error) {
	if err := w.state.endOfInputError(); err != nil {
		return nil, errAt(err, len(w.buf))
	}
	return w.buf, nil
}
