// Package jsondoc reads and writes the JSON documents found in resource
// packs while keeping object key order and number literals intact.
//
// Pack files are hand edited and often carry comments or trailing
// commas. Parse accepts both; Marshal always writes strict JSON with a
// two space indent and a trailing newline.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// Object is a JSON object that remembers the order of its keys
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Len returns the number of members
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the member names in document order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Has reports whether key is present
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set replaces the value of an existing key in place, or appends a new key
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key, keeping the order of the remaining members
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Parse decodes a JSON document. Objects become *Object, arrays []any,
// numbers json.Number, and the remaining literals string, bool or nil.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	value, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return value, nil
}

// ParseObject decodes a document whose top-level value must be an object
func ParseObject(data []byte) (*Object, error) {
	value, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf("top-level value is %s, not an object", TypeName(value))
	}
	return obj, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return t, nil
	}
}

func parseObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string")
		}
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		// Duplicate keys keep their first position and the last value,
		// the way most pack loaders read them.
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// Marshal encodes value as indented JSON followed by a newline
func Marshal(value any) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeValue(&compact, value); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case *Object:
		buf.WriteByte('{')
		for i, key := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, v.values[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeScalar(buf, v)
	}
}

func writeScalar(buf *bytes.Buffer, value any) error {
	var scalar bytes.Buffer
	enc := json.NewEncoder(&scalar)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(scalar.Bytes(), "\n"))
	return nil
}

// TypeName names the JSON type of a parsed value for diagnostics
func TypeName(value any) string {
	switch value.(type) {
	case *Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64, int:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}
