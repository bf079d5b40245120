package jsonnav

// Format identifies an encoding.
type Format int8

const (
	_ Format = iota

	// FormatText is UTF-8 JSON text with typed literal extensions.
	FormatText

	// FormatBinary is the type-marker driven binary encoding.
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	}
	return "unknown"
}

// BinaryFormatMarker is the first byte of every binary buffer.
// It can never start UTF-8 text.
const BinaryFormatMarker byte = 0x80

// DetectFormat returns FormatBinary if buf starts with BinaryFormatMarker,
// otherwise FormatText.
func DetectFormat(buf []byte) Format {
	if len(buf) > 0 && buf[0] == BinaryFormatMarker {
		return FormatBinary
	}
	return FormatText
}

// NodeType is the logical kind of a value regardless of its encoding.
type NodeType int8

const (
	NodeTypeUnknown NodeType = iota
	NodeTypeNull
	NodeTypeFalse
	NodeTypeTrue
	NodeTypeNumber
	NodeTypeString
	NodeTypeFieldName
	NodeTypeArray
	NodeTypeObject
	NodeTypeInt8
	NodeTypeInt16
	NodeTypeInt32
	NodeTypeInt64
	NodeTypeUInt32
	NodeTypeFloat32
	NodeTypeFloat64
	NodeTypeGuid
	NodeTypeBinary
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeNull:
		return "null"
	case NodeTypeFalse:
		return "false"
	case NodeTypeTrue:
		return "true"
	case NodeTypeNumber:
		return "number"
	case NodeTypeString:
		return "string"
	case NodeTypeFieldName:
		return "fieldname"
	case NodeTypeArray:
		return "array"
	case NodeTypeObject:
		return "object"
	case NodeTypeInt8:
		return "int8"
	case NodeTypeInt16:
		return "int16"
	case NodeTypeInt32:
		return "int32"
	case NodeTypeInt64:
		return "int64"
	case NodeTypeUInt32:
		return "uint32"
	case NodeTypeFloat32:
		return "float32"
	case NodeTypeFloat64:
		return "float64"
	case NodeTypeGuid:
		return "guid"
	case NodeTypeBinary:
		return "binary"
	}
	return "unknown"
}

// TokenType is the kind of token a Reader is positioned on.
type TokenType int8

const (
	TokenTypeNotStarted TokenType = iota
	TokenTypeBeginArray
	TokenTypeEndArray
	TokenTypeBeginObject
	TokenTypeEndObject
	TokenTypeString
	TokenTypeNumber
	TokenTypeTrue
	TokenTypeFalse
	TokenTypeNull
	TokenTypeFieldName
	TokenTypeInt8
	TokenTypeInt16
	TokenTypeInt32
	TokenTypeInt64
	TokenTypeUInt32
	TokenTypeFloat32
	TokenTypeFloat64
	TokenTypeGuid
	TokenTypeBinary
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeNotStarted:
		return "notstarted"
	case TokenTypeBeginArray:
		return "["
	case TokenTypeEndArray:
		return "]"
	case TokenTypeBeginObject:
		return "{"
	case TokenTypeEndObject:
		return "}"
	case TokenTypeString:
		return "string"
	case TokenTypeNumber:
		return "number"
	case TokenTypeTrue:
		return "true"
	case TokenTypeFalse:
		return "false"
	case TokenTypeNull:
		return "null"
	case TokenTypeFieldName:
		return "fieldname"
	case TokenTypeInt8:
		return "int8"
	case TokenTypeInt16:
		return "int16"
	case TokenTypeInt32:
		return "int32"
	case TokenTypeInt64:
		return "int64"
	case TokenTypeUInt32:
		return "uint32"
	case TokenTypeFloat32:
		return "float32"
	case TokenTypeFloat64:
		return "float64"
	case TokenTypeGuid:
		return "guid"
	case TokenTypeBinary:
		return "binary"
	}
	return "unknown"
}

// isValue returns true for every token that is a complete value
// or begins one.
func (t TokenType) isValue() bool {
	switch t {
	case TokenTypeNotStarted, TokenTypeEndArray, TokenTypeEndObject, TokenTypeFieldName:
		return false
	}
	return true
}

// tokenTypeOf maps a scalar node type to the token type a reader yields for it.
func tokenTypeOf(t NodeType) TokenType {
	switch t {
	case NodeTypeNull:
		return TokenTypeNull
	case NodeTypeFalse:
		return TokenTypeFalse
	case NodeTypeTrue:
		return TokenTypeTrue
	case NodeTypeNumber:
		return TokenTypeNumber
	case NodeTypeString:
		return TokenTypeString
	case NodeTypeFieldName:
		return TokenTypeFieldName
	case NodeTypeArray:
		return TokenTypeBeginArray
	case NodeTypeObject:
		return TokenTypeBeginObject
	case NodeTypeInt8:
		return TokenTypeInt8
	case NodeTypeInt16:
		return TokenTypeInt16
	case NodeTypeInt32:
		return TokenTypeInt32
	case NodeTypeInt64:
		return TokenTypeInt64
	case NodeTypeUInt32:
		return TokenTypeUInt32
	case NodeTypeFloat32:
		return TokenTypeFloat32
	case NodeTypeFloat64:
		return TokenTypeFloat64
	case NodeTypeGuid:
		return TokenTypeGuid
	case NodeTypeBinary:
		return TokenTypeBinary
	}
	return TokenTypeNotStarted
}
