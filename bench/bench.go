// Package bench compares navigating and decoding documents with jsonnav
// against other JSON libraries.
package bench

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/romshark/jscan/v2"
	"github.com/tidwall/gjson"
	"github.com/valyala/fastjson"

	"github.com/romshark/jsonnav"
)

var ErrInvalid = errors.New("invalid")

// Generate returns a catalog document of n items.
// The same n always yields the same document.
func Generate(n int) []byte {
	b := make([]byte, 0, 64*n+32)
	b = append(b, `{"count":`...)
	b = strconv.AppendInt(b, int64(n), 10)
	b = append(b, `,"items":[`...)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, `{"name":"item-`...)
		b = strconv.AppendInt(b, int64(i), 10)
		b = append(b, `","number":`...)
		b = strconv.AppendInt(b, int64(i*7919%100000), 10)
		b = append(b, `,"tags":["`...)
		b = append(b, tags[i%len(tags)]...)
		b = append(b, `","`...)
		b = append(b, tags[(i+3)%len(tags)]...)
		b = append(b, `"]}`...)
	}
	return append(b, "]}"...)
}

var tags = [...]string{
	"sports", "portable", "outdoor", "kitchen", "garden", "office", "travel",
}

// NavigatorStruct3 reads a Struct3 from the root object of nav.
func NavigatorStruct3(nav jsonnav.Navigator) (s Struct3, err error) {
	return navigatorStruct3(nav, nav.Root())
}

func navigatorStruct3(nav jsonnav.Navigator, n jsonnav.Node) (s Struct3, err error) {
	props, err := nav.ObjectProperties(n)
	if err != nil {
		return s, err
	}
	for _, p := range props {
		name, ok := nav.BufferedStringValue(p.Name)
		if !ok {
			var str string
			if str, err = nav.StringValue(p.Name); err != nil {
				return s, err
			}
			name = []byte(str)
		}
		switch string(name) {
		case "name":
			if s.Name, err = nav.StringValue(p.Value); err != nil {
				return s, err
			}
		case "number":
			v, err := nav.NumberValue(p.Value)
			if err != nil {
				return s, err
			}
			if !v.IsInteger() {
				return s, ErrInvalid
			}
			s.Number = int(v.Int64())
		case "tags":
			items, err := nav.ArrayItems(p.Value)
			if err != nil {
				return s, err
			}
			s.Tags = make([]string, len(items))
			for i, item := range items {
				if s.Tags[i], err = nav.StringValue(item); err != nil {
					return s, err
				}
			}
		default:
			return s, ErrInvalid
		}
	}
	return s, nil
}

// NavigatorIntSlice reads the root array of nav as ints.
func NavigatorIntSlice(nav jsonnav.Navigator) ([]int, error) {
	items, err := nav.ArrayItems(nav.Root())
	if err != nil {
		return nil, err
	}
	a := make([]int, len(items))
	for i, item := range items {
		v, err := nav.NumberValue(item)
		if err != nil {
			return nil, err
		}
		if !v.IsInteger() {
			return nil, ErrInvalid
		}
		a[i] = int(v.Int64())
	}
	return a, nil
}

// NavigatorCatalogItem reads item i of a catalog document.
func NavigatorCatalogItem(nav jsonnav.Navigator, i int) (Struct3, error) {
	n, ok, err := jsonnav.Lookup(nav, nav.Root(), "items", strconv.Itoa(i))
	if err != nil {
		return Struct3{}, err
	}
	if !ok {
		return Struct3{}, ErrInvalid
	}
	return navigatorStruct3(nav, n)
}

// ReaderIntSlice reads an array of ints token by token.
func ReaderIntSlice(r jsonnav.Reader) (s []int, err error) {
	if ok, err := r.Read(); err != nil {
		return nil, err
	} else if !ok || r.TokenType() != jsonnav.TokenTypeBeginArray {
		return nil, ErrInvalid
	}
	for {
		if _, err := r.Read(); err != nil {
			return nil, err
		}
		if r.TokenType() == jsonnav.TokenTypeEndArray {
			break
		}
		v, err := r.NumberValue()
		if err != nil {
			return nil, err
		}
		s = append(s, int(v.Int64()))
	}
	if ok, err := r.Read(); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrInvalid
	}
	return s, nil
}

func JscanIntSlice(t *jscan.Tokenizer[[]byte], str []byte) (s []int, err error) {
	errk := t.Tokenize(str, func(tokens []jscan.Token[[]byte]) bool {
		if tokens[0].Type != jscan.TokenTypeArray {
			err = ErrInvalid
			return true
		}
		s = make([]int, tokens[0].Elements)
		for i, t := 0, 1; tokens[t].Type != jscan.TokenTypeArrayEnd; i, t = i+1, t+1 {
			if tokens[t].Type != jscan.TokenTypeInteger {
				err = fmt.Errorf(
					"at index %d: expected int, received: %s",
					tokens[t].Index, tokens[t].Type.String(),
				)
				return true
			}
			if s[i], err = tokens[t].Int(str); err != nil {
				return true
			}
		}
		return false
	})
	if errk.IsErr() {
		if errk.Code == jscan.ErrorCodeCallback {
			return nil, err
		}
		return nil, errk
	}
	return s, nil
}

func JscanStruct3(t *jscan.Tokenizer[[]byte], src []byte) (s Struct3, err error) {
	errk := t.Tokenize(src, func(tokens []jscan.Token[[]byte]) bool {
		if tokens[0].Type != jscan.TokenTypeObject {
			err = ErrInvalid
			return true
		}
		for ti := 1; tokens[ti].Type != jscan.TokenTypeObjectEnd; {
			key := src[tokens[ti].Index+1 : tokens[ti].End-1]
			ti++
			switch string(key) {
			case "name":
				if s.Name, err = tokens[ti].String(src); err != nil {
					return true
				}
				ti++
			case "number":
				if s.Number, err = tokens[ti].Int(src); err != nil {
					return true
				}
				ti++
			case "tags":
				if tokens[ti].Type != jscan.TokenTypeArray {
					err = ErrInvalid
					return true
				}
				s.Tags = make([]string, 0, tokens[ti].Elements)
				for ti++; tokens[ti].Type != jscan.TokenTypeArrayEnd; ti++ {
					if tokens[ti].Type != jscan.TokenTypeString {
						err = ErrInvalid
						return true
					}
					s.Tags = append(s.Tags, string(src[tokens[ti].Index+1:tokens[ti].End-1]))
				}
				ti++
			default:
				err = ErrInvalid
				return true
			}
		}
		return false
	})
	if errk.IsErr() {
		if errk.Code == jscan.ErrorCodeCallback {
			return s, err
		}
		return s, errk
	}
	return s, nil
}

func GJSONIntSlice(j []byte) ([]int, error) {
	if !gjson.ValidBytes(j) {
		return nil, ErrInvalid
	}
	l := gjson.ParseBytes(j).Array()
	a := make([]int, len(l))
	for i, item := range l {
		a[i] = int(item.Int())
	}
	return a, nil
}

func GJSONStruct3(j []byte) (s Struct3, err error) {
	if !gjson.ValidBytes(j) {
		return s, ErrInvalid
	}
	return gjsonStruct3(gjson.ParseBytes(j))
}

func gjsonStruct3(v gjson.Result) (s Struct3, err error) {
	if !v.IsObject() {
		return s, ErrInvalid
	}
	v.ForEach(func(key, value gjson.Result) bool {
		switch key.Str {
		case "name":
			if value.Type != gjson.String {
				err = ErrInvalid
				return false
			}
			s.Name = value.Str
		case "number":
			if value.Type != gjson.Number {
				err = ErrInvalid
				return false
			}
			var v int64
			if v, err = strconv.ParseInt(value.Raw, 10, 64); err != nil {
				return false
			}
			s.Number = int(v)
		case "tags":
			if !value.IsArray() {
				err = ErrInvalid
				return false
			}
			a := value.Array()
			s.Tags = make([]string, len(a))
			for i := range a {
				if a[i].Type != gjson.String {
					err = ErrInvalid
					return false
				}
				s.Tags[i] = a[i].Str
			}
		default:
			err = ErrInvalid
			return false
		}
		return true
	})
	return s, err
}

// GJSONCatalogItem reads item i of a catalog document.
func GJSONCatalogItem(j []byte, i int) (Struct3, error) {
	v := gjson.GetBytes(j, "items."+strconv.Itoa(i))
	if !v.Exists() {
		return Struct3{}, ErrInvalid
	}
	return gjsonStruct3(v)
}

func FastjsonIntSlice(j []byte) ([]int, error) {
	v, err := fastjson.ParseBytes(j)
	if err != nil {
		return nil, err
	}
	va, err := v.Array()
	if err != nil {
		return nil, err
	}
	a := make([]int, len(va))
	for i := range va {
		if a[i], err = va[i].Int(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func FastjsonStruct3(j []byte) (s Struct3, err error) {
	v, err := fastjson.ParseBytes(j)
	if err != nil {
		return s, err
	}
	return fastjsonStruct3(v)
}

func fastjsonStruct3(v *fastjson.Value) (s Struct3, err error) {
	o, err := v.Object()
	if err != nil {
		return s, err
	}
	o.Visit(func(key []byte, v *fastjson.Value) {
		if err != nil {
			return
		}
		switch string(key) {
		case "name":
			var b []byte
			if b, err = v.StringBytes(); err != nil {
				return
			}
			s.Name = string(b)
		case "number":
			s.Number, err = v.Int()
		case "tags":
			var a []*fastjson.Value
			if a, err = v.Array(); err != nil {
				return
			}
			s.Tags = make([]string, len(a))
			for i := range a {
				var b []byte
				if b, err = a[i].StringBytes(); err != nil {
					return
				}
				s.Tags[i] = string(b)
			}
		default:
			err = ErrInvalid
		}
	})
	return s, err
}

// FastjsonCatalogItem reads item i of a catalog document using p.
func FastjsonCatalogItem(p *fastjson.Parser, j []byte, i int) (Struct3, error) {
	v, err := p.ParseBytes(j)
	if err != nil {
		return Struct3{}, err
	}
	item := v.Get("items", strconv.Itoa(i))
	if item == nil {
		return Struct3{}, ErrInvalid
	}
	return fastjsonStruct3(item)
}
