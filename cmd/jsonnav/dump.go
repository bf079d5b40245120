package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/romshark/jsonnav"
)

func runDump(c *command, args []string, e *env) error {
	var common commonFlags
	flagSet := newFlagSet(c, e, &common)
	if ok, err := parseFlags(flagSet, args, 1); !ok {
		return err
	}
	inName := flagSet.Arg(0)

	in, err := readInput(inName, e.stdin)
	if err != nil {
		return err
	}
	readOptions, err := common.readOptions()
	if err != nil {
		return err
	}
	r, err := jsonnav.NewReader(in, readOptions)
	if err != nil {
		return fmt.Errorf("reading %s: %w", displayName(inName), err)
	}

	out := bufio.NewWriter(e.stdout)
	fmt.Fprintf(out, "# %s, %d bytes\n", r.Format(), len(in))
	for {
		ok, err := r.Read()
		if err != nil {
			out.Flush()
			return fmt.Errorf("reading %s: %w", displayName(inName), err)
		}
		if !ok {
			break
		}
		depth := r.Depth()
		switch r.TokenType() {
		case jsonnav.TokenTypeBeginArray, jsonnav.TokenTypeBeginObject:
			depth--
		}
		s, err := formatToken(r)
		if err != nil {
			out.Flush()
			return fmt.Errorf("reading %s: %w", displayName(inName), err)
		}
		out.WriteString(strings.Repeat("  ", depth))
		out.WriteString(s)
		out.WriteByte('\n')
	}
	return out.Flush()
}

// formatToken returns the type of the current token of r
// followed by its value, if any.
func formatToken(r jsonnav.Reader) (string, error) {
	t := r.TokenType()
	var v string
	switch t {
	case jsonnav.TokenTypeString, jsonnav.TokenTypeFieldName:
		s, err := r.StringValue()
		if err != nil {
			return "", err
		}
		v = strconv.Quote(s)
	case jsonnav.TokenTypeNumber:
		n, err := r.NumberValue()
		if err != nil {
			return "", err
		}
		v = n.String()
	case jsonnav.TokenTypeInt8:
		x, err := r.Int8Value()
		if err != nil {
			return "", err
		}
		v = strconv.FormatInt(int64(x), 10)
	case jsonnav.TokenTypeInt16:
		x, err := r.Int16Value()
		if err != nil {
			return "", err
		}
		v = strconv.FormatInt(int64(x), 10)
	case jsonnav.TokenTypeInt32:
		x, err := r.Int32Value()
		if err != nil {
			return "", err
		}
		v = strconv.FormatInt(int64(x), 10)
	case jsonnav.TokenTypeInt64:
		x, err := r.Int64Value()
		if err != nil {
			return "", err
		}
		v = strconv.FormatInt(x, 10)
	case jsonnav.TokenTypeUInt32:
		x, err := r.UInt32Value()
		if err != nil {
			return "", err
		}
		v = strconv.FormatUint(uint64(x), 10)
	case jsonnav.TokenTypeFloat32:
		x, err := r.Float32Value()
		if err != nil {
			return "", err
		}
		v = strconv.FormatFloat(float64(x), 'g', -1, 32)
	case jsonnav.TokenTypeFloat64:
		x, err := r.Float64Value()
		if err != nil {
			return "", err
		}
		v = strconv.FormatFloat(x, 'g', -1, 64)
	case jsonnav.TokenTypeGuid:
		x, err := r.GuidValue()
		if err != nil {
			return "", err
		}
		v = x.String()
	case jsonnav.TokenTypeBinary:
		x, err := r.BinaryValue()
		if err != nil {
			return "", err
		}
		v = hex.EncodeToString(x)
	default:
		return t.String(), nil
	}
	return t.String() + " " + v, nil
}
