package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is returned by Parse when the input holds more than one
// JSON value.
var ErrTrailingData = errors.New("record: unexpected data after top-level value")

// Parse decodes a single JSON document.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		default:
			return nil, fmt.Errorf("record: unexpected delimiter %q", t)
		}
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("record: unexpected token %T", tok)
	}
}

func decodeMapping(dec *json.Decoder) (*Value, error) {
	m := NewMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("record: expected object key, got %T", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeSequence(dec *json.Decoder) (*Value, error) {
	s := NewSequence()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		s.items = append(s.items, val)
	}
	// Closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return s, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Output is compact.
func (v *Value) MarshalJSON() ([]byte, error) {
	e := newEncoder()
	if err := e.encode(v); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// EncodeJSON writes v to w, indented with indent per level and terminated by
// a newline. HTML characters are written as-is.
func (v *Value) EncodeJSON(w io.Writer, indent string) error {
	e := newEncoder()
	if err := e.encode(v); err != nil {
		return err
	}
	var out bytes.Buffer
	if indent == "" {
		out.Write(e.buf.Bytes())
	} else if err := json.Indent(&out, e.buf.Bytes(), "", indent); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

// String returns the compact JSON form of v.
func (v *Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid record: %v>", err)
	}
	return string(b)
}

type encoder struct {
	buf     bytes.Buffer
	scratch bytes.Buffer
	str     *json.Encoder
}

func newEncoder() *encoder {
	e := &encoder{}
	e.str = json.NewEncoder(&e.scratch)
	e.str.SetEscapeHTML(false)
	return e
}

func (e *encoder) encode(v *Value) error {
	switch v.Kind() {
	case Null:
		e.buf.WriteString("null")
	case Boolean:
		if v.boolean {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case Number:
		if !json.Valid([]byte(v.text)) {
			return fmt.Errorf("record: invalid number literal %q", v.text)
		}
		e.buf.WriteString(v.text)
	case String:
		return e.writeString(v.text)
	case Sequence:
		e.buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.encode(item); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case Mapping:
		e.buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.writeString(f.Key); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if err := e.encode(f.Value); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
	default:
		return fmt.Errorf("record: unknown kind %d", v.kind)
	}
	return nil
}

func (e *encoder) writeString(s string) error {
	e.scratch.Reset()
	if err := e.str.Encode(s); err != nil {
		return err
	}
	e.buf.Write(bytes.TrimSuffix(e.scratch.Bytes(), []byte{'\n'}))
	return nil
}
