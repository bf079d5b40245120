package jsonnav

import "github.com/google/uuid"

// Reader is a forward-only pull reader over a single document.
//
// Read advances to the next token and returns false once the document
// is complete. Value getters apply to the current token and fail with
// ErrTypeMismatch if it's of a different type.
type Reader interface {
	Format() Format
	Read() (bool, error)
	TokenType() TokenType

	// Depth returns the number of open containers.
	Depth() int

	StringValue() (string, error)

	// BufferedStringValue returns the current string or field name without
	// copying if it's stored verbatim, otherwise returns false.
	// The returned slice must not be modified.
	BufferedStringValue() ([]byte, bool)

	NumberValue() (Number, error)
	Int8Value() (int8, error)
	Int16Value() (int16, error)
	Int32Value() (int32, error)
	Int64Value() (int64, error)
	UInt32Value() (uint32, error)
	Float32Value() (float32, error)
	Float64Value() (float64, error)
	GuidValue() (uuid.UUID, error)
	BinaryValue() ([]byte, error)

	// WriteCurrentToken writes the current token to w.
	WriteCurrentToken(w Writer) error
}

// NewReader creates a reader for buf detecting its format.
// options apply to binary buffers only and default to DefaultReadOptions.
func NewReader(buf []byte, options *ReadOptions) (Reader, error) {
	if DetectFormat(buf) == FormatBinary {
		return NewBinaryReader(buf, options)
	}
	return NewTextReader(buf), nil
}

// writeToken writes the current token of r to w using r's getters.
func writeToken(r Reader, w Writer) error {
	switch t := r.TokenType(); t {
	case TokenTypeBeginArray:
		return w.WriteArrayStart()
	case TokenTypeEndArray:
		return w.WriteArrayEnd()
	case TokenTypeBeginObject:
		return w.WriteObjectStart()
	case TokenTypeEndObject:
		return w.WriteObjectEnd()
	case TokenTypeString, TokenTypeFieldName:
		s, err := r.StringValue()
		if err != nil {
			return err
		}
		if t == TokenTypeFieldName {
			return w.WriteFieldName(s)
		}
		return w.WriteStringValue(s)
	case TokenTypeNumber:
		n, err := r.NumberValue()
		if err != nil {
			return err
		}
		return w.WriteNumberValue(n)
	case TokenTypeTrue:
		return w.WriteBoolValue(true)
	case TokenTypeFalse:
		return w.WriteBoolValue(false)
	case TokenTypeNull:
		return w.WriteNullValue()
	case TokenTypeInt8:
		v, err := r.Int8Value()
		if err != nil {
			return err
		}
		return w.WriteInt8Value(v)
	case TokenTypeInt16:
		v, err := r.Int16Value()
		if err != nil {
			return err
		}
		return w.WriteInt16Value(v)
	case TokenTypeInt32:
		v, err := r.Int32Value()
		if err != nil {
			return err
		}
		return w.WriteInt32Value(v)
	case TokenTypeInt64:
		v, err := r.Int64Value()
		if err != nil {
			return err
		}
		return w.WriteInt64Value(v)
	case TokenTypeUInt32:
		v, err := r.UInt32Value()
		if err != nil {
			return err
		}
		return w.WriteUInt32Value(v)
	case TokenTypeFloat32:
		v, err := r.Float32Value()
		if err != nil {
			return err
		}
		return w.WriteFloat32Value(v)
	case TokenTypeFloat64:
		v, err := r.Float64Value()
		if err != nil {
			return err
		}
		return w.WriteFloat64Value(v)
	case TokenTypeGuid:
		v, err := r.GuidValue()
		if err != nil {
			return err
		}
		return w.WriteGuidValue(v)
	case TokenTypeBinary:
		v, err := r.BinaryValue()
		if err != nil {
			return err
		}
		return w.WriteBinaryValue(v)
	}
	return ErrUnexpectedToken
}
