// Package packedstr implements the compressed string forms of the binary
// encoding: 4-bit hex and date-time alphabets, base-relative 4/5/6-bit
// packing, 7-bit ASCII packing and 16-byte GUID strings.
//
// Every form is addressed by its payload, the bytes following the type
// marker. Bits are packed least significant first.
package packedstr

import (
	"bytes"
	"errors"

	"github.com/google/uuid"
)

// Kind identifies a compressed string form.
type Kind uint8

const (
	None Kind = iota
	LowerHex
	UpperHex
	DateTime
	Packed4
	Packed5
	Packed6
	Packed7
	Packed7Long
	LowerGuid
	UpperGuid
	QuotedLowerGuid
)

func (k Kind) String() string {
	switch k {
	case LowerHex:
		return "lowerhex"
	case UpperHex:
		return "upperhex"
	case DateTime:
		return "datetime"
	case Packed4:
		return "packed4"
	case Packed5:
		return "packed5"
	case Packed6:
		return "packed6"
	case Packed7:
		return "packed7"
	case Packed7Long:
		return "packed7long"
	case LowerGuid:
		return "lowerguid"
	case UpperGuid:
		return "upperguid"
	case QuotedLowerGuid:
		return "quotedlowerguid"
	}
	return "none"
}

var ErrTruncated = errors.New("truncated compressed string")

const (
	lowerHexAlphabet = "0123456789abcdef"
	upperHexAlphabet = "0123456789ABCDEF"
	dateTimeAlphabet = " 0123456789:-.TZ"

	// MaxShortLength is the maximum string length of every form
	// except Packed7Long which has a 2-byte length.
	MaxShortLength = 0xFF
	MaxLongLength  = 0xFFFF

	guidStringLength       = 36
	quotedGuidStringLength = 38
)

// alphabet maps a byte to its 4-bit index plus one, 0 means absent.
type alphabet [256]uint8

var lowerHex, upperHex, dateTime alphabet

func init() {
	for i, a := range []string{lowerHexAlphabet, upperHexAlphabet, dateTimeAlphabet} {
		t := [...]*alphabet{&lowerHex, &upperHex, &dateTime}[i]
		for j := 0; j < len(a); j++ {
			t[a[j]] = uint8(j + 1)
		}
	}
}

func (a *alphabet) contains(s []byte) bool {
	for _, c := range s {
		if a[c] == 0 {
			return false
		}
	}
	return true
}

// Choose returns the compressed form that yields the smallest payload for s
// and that payload's size. Returns None if s can't be compressed.
// The caller decides whether the payload beats the literal encoding.
func Choose(s []byte) (Kind, int) {
	if len(s) == 0 || len(s) > MaxLongLength {
		return None, 0
	}
	if k := guidKind(s); k != None {
		return k, 16
	}

	best, bestSize := None, 0
	consider := func(k Kind, size int) {
		if best == None || size < bestSize {
			best, bestSize = k, size
		}
	}

	if len(s) <= MaxShortLength {
		nibbles := 1 + (len(s)+1)/2
		switch {
		case lowerHex.contains(s):
			consider(LowerHex, nibbles)
		case upperHex.contains(s):
			consider(UpperHex, nibbles)
		case dateTime.contains(s):
			consider(DateTime, nibbles)
		}

		min, max := s[0], s[0]
		for _, c := range s[1:] {
			if c < min {
				min = c
			}
			if c > max {
				max = c
			}
		}
		switch r := max - min; {
		case max >= 0x80:
		case r < 16:
			consider(Packed4, 2+(len(s)*4+7)/8)
		case r < 32:
			consider(Packed5, 2+(len(s)*5+7)/8)
		case r < 64:
			consider(Packed6, 2+(len(s)*6+7)/8)
		}
	}
	if ascii(s) {
		if len(s) <= MaxShortLength {
			consider(Packed7, 1+(len(s)*7+7)/8)
		} else {
			consider(Packed7Long, 2+(len(s)*7+7)/8)
		}
	}
	return best, bestSize
}

func ascii(s []byte) bool {
	for _, c := range s {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

func guidKind(s []byte) Kind {
	switch len(s) {
	case guidStringLength:
		switch {
		case isGuidString(s, &lowerHex):
			return LowerGuid
		case isGuidString(s, &upperHex):
			return UpperGuid
		}
	case quotedGuidStringLength:
		if s[0] == '"' && s[len(s)-1] == '"' &&
			isGuidString(s[1:len(s)-1], &lowerHex) {
			return QuotedLowerGuid
		}
	}
	return None
}

func isGuidString(s []byte, a *alphabet) bool {
	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if a[c] == 0 {
				return false
			}
		}
	}
	return true
}

// Append appends the payload of s compressed as k to dst.
// s must have been accepted by Choose for k.
func Append(dst []byte, k Kind, s []byte) []byte {
	switch k {
	case LowerHex:
		return packAlphabet(append(dst, byte(len(s))), s, &lowerHex)
	case UpperHex:
		return packAlphabet(append(dst, byte(len(s))), s, &upperHex)
	case DateTime:
		return packAlphabet(append(dst, byte(len(s))), s, &dateTime)
	case Packed4, Packed5, Packed6:
		base := s[0]
		for _, c := range s[1:] {
			if c < base {
				base = c
			}
		}
		return packBits(append(dst, byte(len(s)), base), s, base, bitsOf(k))
	case Packed7:
		return packBits(append(dst, byte(len(s))), s, 0, 7)
	case Packed7Long:
		return packBits(append(dst, byte(len(s)), byte(len(s)>>8)), s, 0, 7)
	case LowerGuid, UpperGuid:
		u := uuid.Must(uuid.ParseBytes(s))
		return append(dst, u[:]...)
	case QuotedLowerGuid:
		u := uuid.Must(uuid.ParseBytes(s[1 : len(s)-1]))
		return append(dst, u[:]...)
	}
	return dst
}

func bitsOf(k Kind) uint {
	switch k {
	case Packed4:
		return 4
	case Packed5:
		return 5
	case Packed6:
		return 6
	}
	return 7
}

// header returns the decoded string length and the header size of p.
func header(k Kind, p []byte) (length, size int, err error) {
	switch k {
	case LowerGuid, UpperGuid:
		return guidStringLength, 0, nil
	case QuotedLowerGuid:
		return quotedGuidStringLength, 0, nil
	case Packed7Long:
		if len(p) < 2 {
			return 0, 0, ErrTruncated
		}
		return int(p[0]) | int(p[1])<<8, 2, nil
	case Packed4, Packed5, Packed6:
		if len(p) < 2 {
			return 0, 0, ErrTruncated
		}
		return int(p[0]), 2, nil
	}
	if len(p) < 1 {
		return 0, 0, ErrTruncated
	}
	return int(p[0]), 1, nil
}

// PayloadLength returns the number of bytes the payload p of form k occupies.
func PayloadLength(k Kind, p []byte) (int, error) {
	n, size, err := header(k, p)
	if err != nil {
		return 0, err
	}
	switch k {
	case LowerGuid, UpperGuid, QuotedLowerGuid:
		return 16, nil
	case LowerHex, UpperHex, DateTime:
		return size + (n+1)/2, nil
	}
	return size + (n*int(bitsOf(k))+7)/8, nil
}

// DecodedLength returns the length of the string encoded in payload p.
func DecodedLength(k Kind, p []byte) (int, error) {
	n, _, err := header(k, p)
	return n, err
}

// Decode appends the string encoded in payload p to dst.
func Decode(dst []byte, k Kind, p []byte) ([]byte, error) {
	l, err := PayloadLength(k, p)
	if err != nil {
		return dst, err
	}
	if len(p) < l {
		return dst, ErrTruncated
	}
	n, size, _ := header(k, p)
	switch k {
	case LowerHex:
		return unpackAlphabet(dst, p[size:], n, lowerHexAlphabet), nil
	case UpperHex:
		return unpackAlphabet(dst, p[size:], n, upperHexAlphabet), nil
	case DateTime:
		return unpackAlphabet(dst, p[size:], n, dateTimeAlphabet), nil
	case Packed4, Packed5, Packed6:
		return unpackBits(dst, p[size:], n, p[1], bitsOf(k)), nil
	case Packed7, Packed7Long:
		return unpackBits(dst, p[size:], n, 0, 7), nil
	case LowerGuid, QuotedLowerGuid, UpperGuid:
		s := uuid.UUID(p[:16]).String()
		switch k {
		case UpperGuid:
			return append(dst, bytes.ToUpper([]byte(s))...), nil
		case QuotedLowerGuid:
			dst = append(dst, '"')
			dst = append(dst, s...)
			return append(dst, '"'), nil
		}
		return append(dst, s...), nil
	}
	return dst, nil
}

func packAlphabet(dst, s []byte, a *alphabet) []byte {
	for i := 0; i < len(s); i += 2 {
		b := a[s[i]] - 1
		if i+1 < len(s) {
			b |= (a[s[i+1]] - 1) << 4
		}
		dst = append(dst, b)
	}
	return dst
}

func unpackAlphabet(dst, p []byte, n int, a string) []byte {
	for i := 0; i < n; i++ {
		b := p[i/2]
		if i%2 == 1 {
			b >>= 4
		}
		dst = append(dst, a[b&0x0F])
	}
	return dst
}

func packBits(dst, s []byte, base byte, bits uint) []byte {
	var acc uint64
	var n uint
	for _, c := range s {
		acc |= uint64(c-base) << n
		n += bits
		for n >= 8 {
			dst = append(dst, byte(acc))
			acc >>= 8
			n -= 8
		}
	}
	if n > 0 {
		dst = append(dst, byte(acc))
	}
	return dst
}

func unpackBits(dst, p []byte, count int, base byte, bits uint) []byte {
	var acc uint64
	var n uint
	mask := uint64(1)<<bits - 1
	for i, j := 0, 0; i < count; i++ {
		for n < bits {
			acc |= uint64(p[j]) << n
			j++
			n += 8
		}
		dst = append(dst, byte(acc&mask)+base)
		acc >>= bits
		n -= bits
	}
	return dst
}
