package jsonnav

import (
	"errors"
	"strconv"
	"strings"
)

// Grammar violations detected by the token state machine.
var (
	ErrUnexpectedToken          = errors.New("unexpected token")
	ErrMissingNameSeparator     = errors.New("missing name separator")
	ErrMissingValueSeparator    = errors.New("missing value separator")
	ErrUnexpectedNameSeparator  = errors.New("unexpected name separator")
	ErrUnexpectedValueSeparator = errors.New("unexpected value separator")
	ErrFieldNameExpected        = errors.New("field name expected")
	ErrMissingPropertyValue     = errors.New("missing property value")
	ErrUnexpectedEndArray       = errors.New("unexpected end of array")
	ErrUnexpectedEndObject      = errors.New("unexpected end of object")
	ErrMissingEndArray          = errors.New("missing end of array")
	ErrMissingEndObject         = errors.New("missing end of object")
	ErrMaxNestingExceeded       = errors.New("maximum nesting depth exceeded")
)

// Lexical violations in the text encoding.
var (
	ErrUnterminatedString = errors.New("unterminated string")
	ErrInvalidEscape      = errors.New("invalid escape sequence")
	ErrControlCharacter   = errors.New("control character in string")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidGuid        = errors.New("invalid guid")
	ErrInvalidBinary      = errors.New("invalid binary")
)

// Binary encoding violations.
var (
	ErrBufferTooShort    = errors.New("buffer shorter than declared length")
	ErrInvalidTypeMarker = errors.New("invalid type marker")
	ErrInvalidFormat     = errors.New("invalid format marker")
	ErrTrailingData      = errors.New("trailing data after value")
	ErrTypeMismatch      = errors.New("value accessed as wrong type")
)

// Dictionary violations.
var (
	ErrNoDictionary              = errors.New("user string reference without dictionary")
	ErrDictionaryIndexOutOfRange = errors.New("dictionary index out of range")
)

var (
	ErrEmptyDocument   = errors.New("empty document")
	ErrNonFiniteNumber = errors.New("non-finite number")
	ErrForeignNode     = errors.New("node belongs to a different navigator")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Error is a codec error at a byte index of the buffer
// being read or written.
type Error struct {
	Err   error
	Index int
}

func (e Error) Error() string {
	var s strings.Builder
	s.WriteString("at index ")
	s.WriteString(strconv.Itoa(e.Index))
	s.WriteString(": ")
	s.WriteString(e.Err.Error())
	return s.String()
}

func (e Error) Unwrap() error { return e.Err }

func errAt(err error, index int) error { return Error{Err: err, Index: index} }
