package jsonnav

import (
	"bytes"
	"strconv"

	"github.com/google/uuid"
	"github.com/segmentio/asm/base64"

	"github.com/romshark/jsonnav/internal/atoi"
	"github.com/romshark/jsonnav/internal/jsonnum"
	"github.com/romshark/jsonnav/internal/unescape"
)

// Prefixes of typed literals in the text encoding.
const (
	prefixInt8    = 'I'
	prefixInt16   = 'H'
	prefixInt32   = 'L'
	prefixInt64   = 'Q'
	prefixUInt32  = 'U'
	prefixFloat32 = 'S'
	prefixFloat64 = 'D'
	prefixGuid    = 'G'
	prefixBinary  = 'B'
)

const guidStringLength = 36

type textReader struct {
	buf   []byte
	pos   int
	state tokenState
	token TokenType

	// start and end delimit the current token in buf.
	start, end int
	escaped    bool

	// Values of typed literals decoded while scanning.
	i64  int64
	u32  uint32
	f64  float64
	guid uuid.UUID
	bin  []byte
}

var _ Reader = new(textReader)

// NewTextReader creates a reader for UTF-8 JSON text with typed
// literal extensions. Whitespace is ignored, an empty or
// whitespace-only buffer is an empty document.
func NewTextReader(buf []byte) Reader { return &textReader{buf: buf} }

// newTextReaderSpan creates a reader for the value at buf[start:end]
// reporting offsets relative to buf.
func newTextReaderSpan(buf []byte, start, end int) *textReader {
	return &textReader{buf: buf[:end], pos: start}
}

func (r *textReader) Format() Format       { return FormatText }
func (r *textReader) TokenType() TokenType { return r.token }
func (r *textReader) Depth() int           { return r.state.depth }

func (r *textReader) skipSpace() {
	for r.pos < len(r.buf) {
		switch r.buf[r.pos] {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

// isDelimiter returns true if the byte at i may follow a literal.
func (r *textReader) isDelimiter(i int) bool {
	if i >= len(r.buf) {
		return true
	}
	switch r.buf[i] {
	case ' ', '\t', '\n', '\r', ',', ':', ']', '}':
		return true
	}
	return false
}

func (r *textReader) endOfInput() error {
	if err := r.state.endOfInputError(); err != nil {
		return errAt(err, r.pos)
	}
	return nil
}

func (r *textReader) Read() (bool, error) {
	r.skipSpace()
	if r.state.isComplete() {
		if r.pos < len(r.buf) {
			return false, errAt(ErrUnexpectedToken, r.pos)
		}
		return false, nil
	}
	if r.pos >= len(r.buf) {
		return false, r.endOfInput()
	}

	switch r.buf[r.pos] {
	case ']':
		return r.emit(TokenTypeEndArray, r.pos, r.pos+1)
	case '}':
		return r.emit(TokenTypeEndObject, r.pos, r.pos+1)
	}
	if err := r.consumeSeparator(); err != nil {
		return false, err
	}
	return r.lex()
}

func (r *textReader) emit(t TokenType, start, end int) (bool, error) {
	if err := r.state.register(t); err != nil {
		return false, errAt(err, start)
	}
	r.token, r.start, r.end, r.pos = t, start, end, end
	return true, nil
}

// consumeSeparator consumes the separator expected before the next value
// or field name.
func (r *textReader) consumeSeparator() error {
	switch c := r.buf[r.pos]; {
	case r.state.depth == 0:
	case r.state.last == TokenTypeFieldName:
		if c != ':' {
			return errAt(ErrMissingNameSeparator, r.pos)
		}
		if err := r.skipSeparator(); err != nil {
			return err
		}
		switch r.buf[r.pos] {
		case '}':
			return errAt(ErrMissingPropertyValue, r.pos)
		case ']':
			return errAt(ErrUnexpectedEndArray, r.pos)
		}
	case r.state.afterValue():
		if c != ',' {
			return errAt(ErrMissingValueSeparator, r.pos)
		}
		if err := r.skipSeparator(); err != nil {
			return err
		}
		if c := r.buf[r.pos]; c == ']' || c == '}' {
			return errAt(ErrUnexpectedToken, r.pos)
		}
	}
	switch r.buf[r.pos] {
	case ',':
		return errAt(ErrUnexpectedValueSeparator, r.pos)
	case ':':
		return errAt(ErrUnexpectedNameSeparator, r.pos)
	}
	return nil
}

func (r *textReader) skipSeparator() error {
	r.pos++
	r.skipSpace()
	if r.pos >= len(r.buf) {
		return r.endOfInput()
	}
	return nil
}

func (r *textReader) lex() (bool, error) {
	start := r.pos
	switch c := r.buf[start]; c {
	case '{':
		return r.emit(TokenTypeBeginObject, start, start+1)
	case '[':
		return r.emit(TokenTypeBeginArray, start, start+1)
	case '"':
		end, escaped, err := unescape.Scan(r.buf[start+1:])
		if err != nil {
			switch err {
			case unescape.ErrInvalidEscape:
				err = ErrInvalidEscape
			case unescape.ErrControlChar:
				err = ErrControlCharacter
			default:
				err = ErrUnterminatedString
			}
			return false, errAt(err, start+1+end)
		}
		r.escaped = escaped
		t := TokenTypeString
		if r.state.fieldNameExpected() {
			t = TokenTypeFieldName
		}
		return r.emit(t, start, start+end+2)
	case 't':
		return r.lexLiteral(TokenTypeTrue, "true")
	case 'f':
		return r.lexLiteral(TokenTypeFalse, "false")
	case 'n':
		return r.lexLiteral(TokenTypeNull, "null")
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		end, _, ok := jsonnum.Scan(r.buf[start:])
		if !ok || !r.isDelimiter(start+end) {
			return false, errAt(ErrInvalidNumber, start)
		}
		return r.emit(TokenTypeNumber, start, start+end)
	case prefixInt8, prefixInt16, prefixInt32, prefixInt64, prefixUInt32:
		return r.lexTypedInt(c)
	case prefixFloat32, prefixFloat64:
		return r.lexTypedFloat(c)
	case prefixGuid:
		return r.lexGuid()
	case prefixBinary:
		return r.lexBinary()
	}
	return false, errAt(ErrInvalidToken, start)
}

func (r *textReader) lexLiteral(t TokenType, lit string) (bool, error) {
	end := r.pos + len(lit)
	if !bytes.HasPrefix(r.buf[r.pos:], stringBytes(lit)) || !r.isDelimiter(end) {
		return false, errAt(ErrInvalidToken, r.pos)
	}
	return r.emit(t, r.pos, end)
}

func (r *textReader) lexTypedInt(prefix byte) (bool, error) {
	start := r.pos
	n, integer, ok := jsonnum.Scan(r.buf[start+1:])
	end := start + 1 + n
	if !ok || !integer || !r.isDelimiter(end) {
		return false, errAt(ErrInvalidNumber, start)
	}
	s := r.buf[start+1 : end]
	var t TokenType
	var overflow bool
	switch prefix {
	case prefixInt8:
		var v int8
		v, overflow = atoi.I8(s)
		t, r.i64 = TokenTypeInt8, int64(v)
	case prefixInt16:
		var v int16
		v, overflow = atoi.I16(s)
		t, r.i64 = TokenTypeInt16, int64(v)
	case prefixInt32:
		var v int32
		v, overflow = atoi.I32(s)
		t, r.i64 = TokenTypeInt32, int64(v)
	case prefixInt64:
		t = TokenTypeInt64
		r.i64, overflow = atoi.I64(s)
	default:
		t = TokenTypeUInt32
		r.u32, overflow = atoi.U32(s)
	}
	if overflow {
		return false, errAt(ErrInvalidNumber, start)
	}
	return r.emit(t, start, end)
}

func (r *textReader) lexTypedFloat(prefix byte) (bool, error) {
	start := r.pos
	n, _, ok := jsonnum.Scan(r.buf[start+1:])
	end := start + 1 + n
	if !ok || !r.isDelimiter(end) {
		return false, errAt(ErrInvalidNumber, start)
	}
	t, bitSize := TokenTypeFloat64, 64
	if prefix == prefixFloat32 {
		t, bitSize = TokenTypeFloat32, 32
	}
	f, err := strconv.ParseFloat(string(r.buf[start+1:end]), bitSize)
	if err != nil {
		return false, errAt(ErrInvalidNumber, start)
	}
	r.f64 = f
	return r.emit(t, start, end)
}

func (r *textReader) lexGuid() (bool, error) {
	start := r.pos
	end := start + 1 + guidStringLength
	if end > len(r.buf) || !r.isDelimiter(end) {
		return false, errAt(ErrInvalidGuid, start)
	}
	g, err := uuid.ParseBytes(r.buf[start+1 : end])
	if err != nil {
		return false, errAt(ErrInvalidGuid, start)
	}
	r.guid = g
	return r.emit(TokenTypeGuid, start, end)
}

func (r *textReader) lexBinary() (bool, error) {
	start := r.pos
	end := start + 1
	for end < len(r.buf) && isBase64Char(r.buf[end]) {
		end++
	}
	if !r.isDelimiter(end) {
		return false, errAt(ErrInvalidBinary, start)
	}
	s := r.buf[start+1 : end]
	r.bin = make([]byte, base64.StdEncoding.DecodedLen(len(s)))
	n, err := base64.StdEncoding.Decode(r.bin, s)
	if err != nil {
		return false, errAt(ErrInvalidBinary, start)
	}
	r.bin = r.bin[:n]
	return r.emit(TokenTypeBinary, start, end)
}

func isBase64Char(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') || c == '+' || c == '/' || c == '='
}

func (r *textReader) isString() bool {
	return r.token == TokenTypeString || r.token == TokenTypeFieldName
}

func (r *textReader) StringValue() (string, error) {
	if !r.isString() {
		return "", errAt(ErrTypeMismatch, r.start)
	}
	return textStringValue(r.buf, r.start, r.end, r.escaped)
}

// textStringValue returns the contents of the string literal at buf[start:end].
func textStringValue(buf []byte, start, end int, escaped bool) (string, error) {
	raw := buf[start+1 : end-1]
	if !escaped {
		return string(raw), nil
	}
	b, err := unescape.Append(make([]byte, 0, len(raw)), raw)
	if err != nil {
		return "", errAt(ErrInvalidEscape, start)
	}
	return string(b), nil
}

func (r *textReader) BufferedStringValue() ([]byte, bool) {
	if !r.isString() || r.escaped {
		return nil, false
	}
	return r.buf[r.start+1 : r.end-1], true
}

func (r *textReader) mismatch() error { return errAt(ErrTypeMismatch, r.start) }

func (r *textReader) NumberValue() (Number, error) {
	if r.token != TokenTypeNumber {
		return Number{}, r.mismatch()
	}
	n, err := ParseNumber(r.buf[r.start:r.end])
	if err != nil {
		return Number{}, errAt(err, r.start)
	}
	return n, nil
}

func (r *textReader) Int8Value() (int8, error) {
	if r.token != TokenTypeInt8 {
		return 0, r.mismatch()
	}
	return int8(r.i64), nil
}

func (r *textReader) Int16Value() (int16, error) {
	if r.token != TokenTypeInt16 {
		return 0, r.mismatch()
	}
	return int16(r.i64), nil
}

func (r *textReader) Int32Value() (int32, error) {
	if r.token != TokenTypeInt32 {
		return 0, r.mismatch()
	}
	return int32(r.i64), nil
}

func (r *textReader) Int64Value() (int64, error) {
	if r.token != TokenTypeInt64 {
		return 0, r.mismatch()
	}
	return r.i64, nil
}

func (r *textReader) UInt32Value() (uint32, error) {
	if r.token != TokenTypeUInt32 {
		return 0, r.mismatch()
	}
	return r.u32, nil
}

func (r *textReader) Float32Value() (float32, error) {
	if r.token != TokenTypeFloat32 {
		return 0, r.mismatch()
	}
	return float32(r.f64), nil
}

func (r *textReader) Float64Value() (float64, error) {
	if r.token != TokenTypeFloat64 {
		return 0, r.mismatch()
	}
	return r.f64, nil
}

func (r *textReader) GuidValue() (uuid.UUID, error) {
	if r.token != TokenTypeGuid {
		return uuid.Nil, r.mismatch()
	}
	return r.guid, nil
}

func (r *textReader) BinaryValue() ([]byte, error) {
	if r.token != TokenTypeBinary {
		return nil, r.mismatch()
	}
	return r.bin, nil
}

func (r *textReader) WriteCurrentToken(w Writer) error {
	if tw, ok := w.(*textWriter); ok {
		switch r.token {
		case TokenTypeNotStarted, TokenTypeBeginArray, TokenTypeEndArray,
			TokenTypeBeginObject, TokenTypeEndObject:
		default:
			return tw.writeRaw(r.token, r.buf[r.start:r.end])
		}
	}
	return writeToken(r, w)
}
