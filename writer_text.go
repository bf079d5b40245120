package jsonnav

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/segmentio/asm/base64"
)

type textWriter struct {
	buf   []byte
	state tokenState
}

var _ Writer = new(textWriter)

// NewTextWriter creates a writer producing compact JSON text.
// Typed values are written as literals with a one letter type prefix.
func NewTextWriter() Writer { return newTextWriter() }

func newTextWriter() *textWriter {
	return &textWriter{buf: make([]byte, 0, 64)}
}

func (w *textWriter) Format() Format { return FormatText }

// begin registers t and writes the value separator if needed.
func (w *textWriter) begin(t TokenType) error {
	sep := w.state.depth > 0 && w.state.afterValue()
	if err := w.state.register(t); err != nil {
		return errAt(err, len(w.buf))
	}
	if sep && t != TokenTypeEndArray && t != TokenTypeEndObject {
		w.buf = append(w.buf, ',')
	}
	return nil
}

func (w *textWriter) WriteObjectStart() error { return w.writeToken(TokenTypeBeginObject, '{') }
func (w *textWriter) WriteObjectEnd() error   { return w.writeToken(TokenTypeEndObject, '}') }
func (w *textWriter) WriteArrayStart() error  { return w.writeToken(TokenTypeBeginArray, '[') }
func (w *textWriter) WriteArrayEnd() error    { return w.writeToken(TokenTypeEndArray, ']') }

func (w *textWriter) writeToken(t TokenType, c byte) error {
	if err := w.begin(t); err != nil {
		return err
	}
	w.buf = append(w.buf, c)
	return nil
}

func (w *textWriter) WriteFieldName(name string) error {
	if err := w.begin(TokenTypeFieldName); err != nil {
		return err
	}
	w.buf = append(appendQuoted(w.buf, name), ':')
	return nil
}

func (w *textWriter) WriteStringValue(s string) error {
	if err := w.begin(TokenTypeString); err != nil {
		return err
	}
	w.buf = appendQuoted(w.buf, s)
	return nil
}

const hexDigits = "0123456789abcdef"

// appendQuoted appends s as a JSON string literal. Invalid UTF-8 is
// replaced by U+FFFD.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				dst = append(dst, s[start:i]...)
				dst = append(dst, "\ufffd"...)
				i += size
				start = i
				continue
			}
			i += size
			continue
		}
		if c >= 0x20 && c != '"' && c != '\\' {
			i++
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
		i++
		start = i
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}

func (w *textWriter) WriteNumberValue(n Number) error {
	if !n.IsFinite() {
		return errAt(ErrNonFiniteNumber, len(w.buf))
	}
	if err := w.begin(TokenTypeNumber); err != nil {
		return err
	}
	w.buf = n.AppendText(w.buf)
	return nil
}

func (w *textWriter) WriteBoolValue(v bool) error {
	if v {
		return w.writeLiteral(TokenTypeTrue, "true")
	}
	return w.writeLiteral(TokenTypeFalse, "false")
}

func (w *textWriter) WriteNullValue() error { return w.writeLiteral(TokenTypeNull, "null") }

func (w *textWriter) writeLiteral(t TokenType, s string) error {
	if err := w.begin(t); err != nil {
		return err
	}
	w.buf = append(w.buf, s...)
	return nil
}

func (w *textWriter) writeInt(t TokenType, prefix byte, v int64) error {
	if err := w.begin(t); err != nil {
		return err
	}
	w.buf = strconv.AppendInt(append(w.buf, prefix), v, 10)
	return nil
}

func (w *textWriter) WriteInt8Value(v int8) error {
	return w.writeInt(TokenTypeInt8, prefixInt8, int64(v))
}

func (w *textWriter) WriteInt16Value(v int16) error {
	return w.writeInt(TokenTypeInt16, prefixInt16, int64(v))
}

func (w *textWriter) WriteInt32Value(v int32) error {
	return w.writeInt(TokenTypeInt32, prefixInt32, int64(v))
}

func (w *textWriter) WriteInt64Value(v int64) error {
	return w.writeInt(TokenTypeInt64, prefixInt64, v)
}

func (w *textWriter) WriteUInt32Value(v uint32) error {
	return w.writeInt(TokenTypeUInt32, prefixUInt32, int64(v))
}

func (w *textWriter) writeFloat(t TokenType, prefix byte, v float64, bitSize int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errAt(ErrNonFiniteNumber, len(w.buf))
	}
	if err := w.begin(t); err != nil {
		return err
	}
	w.buf = strconv.AppendFloat(append(w.buf, prefix), v, 'g', -1, bitSize)
	return nil
}

func (w *textWriter) WriteFloat32Value(v float32) error {
	return w.writeFloat(TokenTypeFloat32, prefixFloat32, float64(v), 32)
}

func (w *textWriter) WriteFloat64Value(v float64) error {
	return w.writeFloat(TokenTypeFloat64, prefixFloat64, v, 64)
}

func (w *textWriter) WriteGuidValue(v uuid.UUID) error {
	if err := w.begin(TokenTypeGuid); err != nil {
		return err
	}
	w.buf = append(append(w.buf, prefixGuid), v.String()...)
	return nil
}

func (w *textWriter) WriteBinaryValue(v []byte) error {
	if err := w.begin(TokenTypeBinary); err != nil {
		return err
	}
	w.buf = append(w.buf, prefixBinary)
	l := len(w.buf)
	n := base64.StdEncoding.EncodedLen(len(v))
	w.buf = append(w.buf, make([]byte, n)...)
	base64.StdEncoding.Encode(w.buf[l:], v)
	return nil
}

// writeRaw appends the text of a complete value of type t as is.
func (w *textWriter) writeRaw(t TokenType, raw []byte) error {
	sep := w.state.depth > 0 && w.state.afterValue()
	if err := w.state.registerComplete(t); err != nil {
		return errAt(err, len(w.buf))
	}
	if sep {
		w.buf = append(w.buf, ',')
	}
	w.buf = append(w.buf, raw...)
	if t == TokenTypeFieldName {
		w.buf = append(w.buf, ':')
	}
	return nil
}

func (w *textWriter) Result() ([]byte, error) {
	if err := w.state.endOfInputError(); err != nil {
		return nil, errAt(err, len(w.buf))
	}
	return w.buf, nil
}
