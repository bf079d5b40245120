package jsonnav

import "fmt"

const (
	// MaxUserStrings is the maximum number of entries a Dictionary holds.
	MaxUserStrings = (markerUserString2Max - markerUserString2Min) << 8

	// MinUserStringLength and MaxUserStringLength bound the length of
	// strings a Dictionary accepts. Shorter strings are cheaper inline.
	MinUserStringLength = 2
	MaxUserStringLength = 128
)

// Dictionary is an append-only table of frequent strings shared by a
// binary writer and the readers of its output. Strings are referenced
// by their index which never changes once assigned.
//
// A Dictionary is not safe for concurrent use.
type Dictionary struct {
	strings [][]byte
	index   map[string]int
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// LoadDictionary creates a dictionary holding entries in order.
// Fails if any entry can't be added or occurs twice since that would
// shift the indexes of the following entries.
func LoadDictionary(entries []string) (*Dictionary, error) {
	d := NewDictionary()
	for i, e := range entries {
		if _, ok := d.index[e]; ok {
			return nil, fmt.Errorf("dictionary entry %d: duplicate %q", i, e)
		}
		if _, ok := d.tryAdd(e); !ok {
			return nil, fmt.Errorf("dictionary entry %d: can't add %q", i, e)
		}
	}
	return d, nil
}

// TryAddString returns the index of s, adding it if it's not yet present.
// Returns false if s is too short or too long or the dictionary is full.
func (d *Dictionary) TryAddString(s []byte) (int, bool) {
	if i, ok := d.index[string(s)]; ok {
		return i, true
	}
	return d.tryAdd(string(s))
}

func (d *Dictionary) tryAdd(s string) (int, bool) {
	if i, ok := d.index[s]; ok {
		return i, true
	}
	if len(s) < MinUserStringLength || len(s) > MaxUserStringLength ||
		len(d.strings) >= MaxUserStrings {
		return 0, false
	}
	i := len(d.strings)
	d.strings = append(d.strings, []byte(s))
	d.index[s] = i
	return i, true
}

// TryGetStringAtIndex returns the string at index i.
// The returned slice must not be modified.
func (d *Dictionary) TryGetStringAtIndex(i int) ([]byte, bool) {
	if i < 0 || i >= len(d.strings) {
		return nil, false
	}
	return d.strings[i], true
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.strings) }

// Full returns true if no more strings can be added.
func (d *Dictionary) Full() bool { return len(d.strings) >= MaxUserStrings }

// Clone returns an independent copy of d.
func (d *Dictionary) Clone() *Dictionary {
	c := &Dictionary{
		strings: make([][]byte, len(d.strings)),
		index:   make(map[string]int, len(d.index)),
	}
	copy(c.strings, d.strings)
	for k, v := range d.index {
		c.index[k] = v
	}
	return c
}

// Strings returns all entries in index order.
func (d *Dictionary) Strings() []string {
	s := make([]string, len(d.strings))
	for i, b := range d.strings {
		s[i] = string(b)
	}
	return s
}
