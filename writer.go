package jsonnav

import "github.com/google/uuid"

// Writer is a forward-only token writer producing a complete document.
// Every method validates the token sequence and fails with an *Error
// pointing at the output offset if the token isn't legal at that position.
type Writer interface {
	Format() Format

	WriteObjectStart() error
	WriteObjectEnd() error
	WriteArrayStart() error
	WriteArrayEnd() error
	WriteFieldName(name string) error

	WriteStringValue(s string) error
	WriteNumberValue(n Number) error
	WriteBoolValue(v bool) error
	WriteNullValue() error

	WriteInt8Value(v int8) error
	WriteInt16Value(v int16) error
	WriteInt32Value(v int32) error
	WriteInt64Value(v int64) error
	WriteUInt32Value(v uint32) error
	WriteFloat32Value(v float32) error
	WriteFloat64Value(v float64) error
	WriteGuidValue(v uuid.UUID) error
	WriteBinaryValue(v []byte) error

	// Result returns the encoded document. Fails if containers are left open.
	// The returned slice is owned by the writer and must not be written to
	// after further writes.
	Result() ([]byte, error)
}

// NewWriter creates a writer for format.
// options apply to FormatBinary only and default to DefaultWriteOptions.
func NewWriter(format Format, options *WriteOptions) Writer {
	if format == FormatBinary {
		return NewBinaryWriter(options)
	}
	return NewTextWriter()
}

// WriteAll reads every remaining token from r and writes it to w.
func WriteAll(w Writer, r Reader) error {
	for {
		ok, err := r.Read()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := r.WriteCurrentToken(w); err != nil {
			return err
		}
	}
}

// Transcode converts buf, which may be in either format, to format to.
// read and write may be nil to use the defaults.
func Transcode(buf []byte, to Format, read *ReadOptions, write *WriteOptions) ([]byte, error) {
	r, err := NewReader(buf, read)
	if err != nil {
		return nil, err
	}
	w := NewWriter(to, write)
	if err := WriteAll(w, r); err != nil {
		return nil, err
	}
	return w.Result()
}
