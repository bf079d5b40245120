package jsonnav_test

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romshark/jsonnav"
)

// trace reads r to the end and returns one line per token.
func trace(t *testing.T, r jsonnav.Reader) []string {
	t.Helper()
	var tokens []string
	for {
		ok, err := r.Read()
		require.NoError(t, err)
		if !ok {
			return tokens
		}
		tokens = append(tokens, tokenString(t, r))
	}
}

// traceErr reads r until it fails and returns the error.
func traceErr(t *testing.T, r jsonnav.Reader) error {
	t.Helper()
	for {
		ok, err := r.Read()
		if err != nil {
			return err
		}
		require.True(t, ok, "no error")
	}
}

func tokenString(t *testing.T, r jsonnav.Reader) string {
	t.Helper()
	var v any
	var err error
	switch tt := r.TokenType(); tt {
	case jsonnav.TokenTypeString, jsonnav.TokenTypeFieldName:
		var s string
		s, err = r.StringValue()
		v = fmt.Sprintf("%q", s)
	case jsonnav.TokenTypeNumber:
		v, err = r.NumberValue()
	case jsonnav.TokenTypeInt8:
		v, err = r.Int8Value()
	case jsonnav.TokenTypeInt16:
		v, err = r.Int16Value()
	case jsonnav.TokenTypeInt32:
		v, err = r.Int32Value()
	case jsonnav.TokenTypeInt64:
		v, err = r.Int64Value()
	case jsonnav.TokenTypeUInt32:
		v, err = r.UInt32Value()
	case jsonnav.TokenTypeFloat32:
		v, err = r.Float32Value()
	case jsonnav.TokenTypeFloat64:
		v, err = r.Float64Value()
	case jsonnav.TokenTypeGuid:
		v, err = r.GuidValue()
	case jsonnav.TokenTypeBinary:
		var b []byte
		b, err = r.BinaryValue()
		v = hex.EncodeToString(b)
	default:
		return tt.String()
	}
	require.NoError(t, err)
	return fmt.Sprintf("%s %v", r.TokenType(), v)
}

// requireErrAt makes sure err is a jsonnav.Error wrapping expect at index.
func requireErrAt(t *testing.T, err error, expect error, index int) {
	t.Helper()
	var e jsonnav.Error
	require.True(t, errors.As(err, &e), "unexpected error type %T: %v", err, err)
	require.Equal(t, expect, e.Err)
	require.Equal(t, index, e.Index)
}

// toBinary transcodes JSON text to the binary encoding.
func toBinary(t *testing.T, text string, options *jsonnav.WriteOptions) []byte {
	t.Helper()
	b, err := jsonnav.Transcode([]byte(text), jsonnav.FormatBinary, nil, options)
	require.NoError(t, err)
	return b
}

// toText transcodes a buffer of either encoding to JSON text.
func toText(t *testing.T, buf []byte, options *jsonnav.ReadOptions) string {
	t.Helper()
	b, err := jsonnav.Transcode(buf, jsonnav.FormatText, options, nil)
	require.NoError(t, err)
	return string(b)
}
