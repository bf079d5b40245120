package jsonnav

import "github.com/google/uuid"

type binaryReader struct {
	buf  []byte
	dict *Dictionary

	// pos is the offset of the next token, end is the end of the root value.
	pos, end int

	state  tokenState
	frames []binaryReaderFrame

	token TokenType

	// offset is the offset of the current value's marker or, if packed,
	// of its item bytes.
	offset int
	length int
	marker byte
	packed bool
}

type binaryFrameKind int8

const (
	frameArray binaryFrameKind = iota
	frameObject
	frameUniform
	frameNestedUniform
)

type binaryReaderFrame struct {
	kind binaryFrameKind
	end  int

	// Uniform arrays only.
	itemMarker byte
	itemSize   int
	remaining  int
	innerCount int
}

var _ Reader = new(binaryReader)

// NewBinaryReader creates a reader for the binary encoding. buf must start
// with BinaryFormatMarker followed by exactly one value or nothing.
// options default to DefaultReadOptions if nil.
func NewBinaryReader(buf []byte, options *ReadOptions) (Reader, error) {
	if options == nil {
		options = DefaultReadOptions
	}
	if len(buf) < 1 || buf[0] != BinaryFormatMarker {
		return nil, errAt(ErrInvalidFormat, 0)
	}
	if len(buf) > 1 {
		n, err := valueByteLength(buf, 1)
		if err != nil {
			return nil, err
		}
		if 1+n != len(buf) {
			return nil, errAt(ErrTrailingData, 1+n)
		}
	}
	return newBinaryReaderAt(buf, 1, len(buf), options.Dictionary), nil
}

// newBinaryReaderAt creates a reader for the value at buf[off:end].
func newBinaryReaderAt(buf []byte, off, end int, dict *Dictionary) *binaryReader {
	return &binaryReader{buf: buf, dict: dict, pos: off, end: end}
}

func (r *binaryReader) Format() Format       { return FormatBinary }
func (r *binaryReader) TokenType() TokenType { return r.token }
func (r *binaryReader) Depth() int           { return r.state.depth }

func (r *binaryReader) Read() (bool, error) {
	if r.state.isComplete() ||
		(r.state.last == TokenTypeNotStarted && r.pos >= r.end) {
		return false, nil
	}
	if len(r.frames) > 0 {
		f := &r.frames[len(r.frames)-1]
		switch f.kind {
		case frameUniform:
			if f.remaining < 1 {
				return r.closeFrame(TokenTypeEndArray)
			}
			f.remaining--
			r.offset, r.length = r.pos, f.itemSize
			r.marker, r.packed = f.itemMarker, true
			r.pos += f.itemSize
			return r.emit(tokenTypeOf(nodeTypeOf(f.itemMarker)))
		case frameNestedUniform:
			if f.remaining < 1 {
				return r.closeFrame(TokenTypeEndArray)
			}
			f.remaining--
			inner := binaryReaderFrame{
				kind:       frameUniform,
				end:        r.pos + f.innerCount*f.itemSize,
				itemMarker: f.itemMarker,
				itemSize:   f.itemSize,
				remaining:  f.innerCount,
			}
			r.offset, r.length, r.marker, r.packed = r.pos, 0, markerInvalid, false
			if ok, err := r.emit(TokenTypeBeginArray); !ok {
				return ok, err
			}
			r.frames = append(r.frames, inner)
			return true, nil
		case frameArray:
			if r.pos >= f.end {
				return r.closeFrame(TokenTypeEndArray)
			}
		case frameObject:
			if r.pos >= f.end {
				return r.closeFrame(TokenTypeEndObject)
			}
		}
	}
	return r.readValue()
}

func (r *binaryReader) emit(t TokenType) (bool, error) {
	if err := r.state.register(t); err != nil {
		return false, errAt(err, r.offset)
	}
	r.token = t
	return true, nil
}

func (r *binaryReader) closeFrame(t TokenType) (bool, error) {
	r.offset, r.length, r.marker, r.packed = r.pos, 0, markerInvalid, false
	r.frames = r.frames[:len(r.frames)-1]
	return r.emit(t)
}

func (r *binaryReader) readValue() (bool, error) {
	limit := r.end
	if len(r.frames) > 0 {
		limit = r.frames[len(r.frames)-1].end
	}
	off := r.pos
	if off >= limit {
		return false, errAt(ErrBufferTooShort, off)
	}
	m := r.buf[off]
	nt := nodeTypeOf(m)
	if nt == NodeTypeUnknown {
		return false, errAt(ErrInvalidTypeMarker, off)
	}
	n, err := valueByteLength(r.buf[:limit], off)
	if err != nil {
		return false, err
	}
	r.offset, r.length, r.marker, r.packed = off, n, m, false

	switch nt {
	case NodeTypeArray, NodeTypeObject:
		t, f := TokenTypeBeginArray, binaryReaderFrame{kind: frameArray, end: off + n}
		if nt == NodeTypeObject {
			t, f.kind = TokenTypeBeginObject, frameObject
		}
		if ok, err := r.emit(t); !ok {
			return ok, err
		}
		r.pos = off + firstChildOffset(m)
		if isUniformArray(m) {
			u, err := readUniformArray(r.buf, off)
			if err != nil {
				return false, err
			}
			f.kind = frameUniform
			if u.nested {
				f.kind = frameNestedUniform
			}
			f.itemMarker, f.itemSize = u.itemMarker, u.itemSize
			f.remaining, f.innerCount = u.count, u.innerCount
			r.pos = off + u.prefix
		}
		r.frames = append(r.frames, f)
		return true, nil
	case NodeTypeString:
		r.pos = off + n
		if r.state.fieldNameExpected() {
			return r.emit(TokenTypeFieldName)
		}
		return r.emit(TokenTypeString)
	}
	r.pos = off + n
	return r.emit(tokenTypeOf(nt))
}

// payload returns the marker and the bytes following it
// for the current value.
func (r *binaryReader) payload() (byte, []byte) {
	if r.packed {
		return r.marker, r.buf[r.offset : r.offset+r.length]
	}
	if r.length < 1 {
		return r.marker, nil
	}
	return r.marker, r.buf[r.offset+1 : r.offset+r.length]
}

func (r *binaryReader) isString() bool {
	return !r.packed && (r.token == TokenTypeString || r.token == TokenTypeFieldName)
}

func (r *binaryReader) StringValue() (string, error) {
	if !r.isString() {
		return "", errAt(ErrTypeMismatch, r.offset)
	}
	if b, ok := bufferedBinaryString(r.buf, r.offset, r.dict); ok {
		return string(b), nil
	}
	b, err := appendBinaryString(nil, r.buf, r.offset, r.dict)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *binaryReader) BufferedStringValue() ([]byte, bool) {
	if !r.isString() {
		return nil, false
	}
	return bufferedBinaryString(r.buf, r.offset, r.dict)
}

func (r *binaryReader) wrap(err error) error {
	if err != nil {
		return errAt(err, r.offset)
	}
	return nil
}

func (r *binaryReader) NumberValue() (Number, error) {
	if r.token != TokenTypeNumber {
		return Number{}, errAt(ErrTypeMismatch, r.offset)
	}
	v, err := decodeNumber(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) Int8Value() (int8, error) {
	v, err := decodeInt8(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) Int16Value() (int16, error) {
	v, err := decodeInt16(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) Int32Value() (int32, error) {
	v, err := decodeInt32(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) Int64Value() (int64, error) {
	v, err := decodeInt64(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) UInt32Value() (uint32, error) {
	v, err := decodeUInt32(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) Float32Value() (float32, error) {
	v, err := decodeFloat32(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) Float64Value() (float64, error) {
	v, err := decodeFloat64(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) GuidValue() (uuid.UUID, error) {
	v, err := decodeGuid(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) BinaryValue() ([]byte, error) {
	v, err := decodeBinary(r.payload())
	return v, r.wrap(err)
}

func (r *binaryReader) WriteCurrentToken(w Writer) error {
	if bw, ok := w.(*binaryWriter); ok && bw.dict == r.dict && r.canCopy() {
		return bw.writeRaw(r.token, r.buf[r.offset:r.offset+r.length])
	}
	return writeToken(r, w)
}

// canCopy returns true if the current token is a scalar whose
// encoding can be copied as is.
func (r *binaryReader) canCopy() bool {
	switch r.token {
	case TokenTypeNotStarted, TokenTypeBeginArray, TokenTypeEndArray,
		TokenTypeBeginObject, TokenTypeEndObject:
		return false
	}
	return !r.packed && r.length > 0 &&
		encodedStringLength(r.marker) != stringLengthReference &&
		(r.dict != nil || !isUserString(r.marker))
}
