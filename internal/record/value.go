package record

import (
	"encoding/json"
)

// Kind identifies which variant of the union a Value holds.
type Kind int

const (
	Null Kind = iota
	Boolean
	Number
	String
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Field is one key/value pair of a Mapping.
type Field struct {
	Key   string
	Value *Value
}

// Value is a node of a JSON document. The zero Value is Null.
//
// A nil *Value is treated as Null by every read accessor and by the encoder.
type Value struct {
	kind Kind

	// text holds the string contents or the literal number text.
	text    string
	boolean bool

	items  []*Value
	fields []Field
	index  map[string]int
}

// NewNull returns a Null value.
func NewNull() *Value { return &Value{kind: Null} }

// NewString returns a String value.
func NewString(s string) *Value { return &Value{kind: String, text: s} }

// NewBool returns a Boolean value.
func NewBool(b bool) *Value { return &Value{kind: Boolean, boolean: b} }

// NewNumber returns a Number value holding the literal text of n.
func NewNumber(n json.Number) *Value { return &Value{kind: Number, text: n.String()} }

// NewSequence returns a Sequence holding items.
func NewSequence(items ...*Value) *Value {
	return &Value{kind: Sequence, items: items}
}

// NewMapping returns an empty Mapping.
func NewMapping() *Value {
	return &Value{kind: Mapping, index: map[string]int{}}
}

// Kind reports the variant held by v.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// IsNull reports whether v is Null (or nil).
func (v *Value) IsNull() bool { return v.Kind() == Null }

// AsString returns the contents of a String value.
func (v *Value) AsString() (string, bool) {
	if v.Kind() != String {
		return "", false
	}
	return v.text, true
}

// AsBool returns the contents of a Boolean value.
func (v *Value) AsBool() (bool, bool) {
	if v.Kind() != Boolean {
		return false, false
	}
	return v.boolean, true
}

// AsNumber returns the literal text of a Number value.
func (v *Value) AsNumber() (json.Number, bool) {
	if v.Kind() != Number {
		return "", false
	}
	return json.Number(v.text), true
}

// SetString turns v into a String value holding s, whatever it held before.
func (v *Value) SetString(s string) {
	*v = Value{kind: String, text: s}
}

// SetNull turns v into Null.
func (v *Value) SetNull() {
	*v = Value{kind: Null}
}

// Items returns the elements of a Sequence. The slice is shared with v.
func (v *Value) Items() []*Value {
	if v.Kind() != Sequence {
		return nil
	}
	return v.items
}

// Append adds items to the end of a Sequence. It is a no-op on other kinds.
func (v *Value) Append(items ...*Value) {
	if v.Kind() != Sequence {
		return
	}
	v.items = append(v.items, items...)
}

// Fields returns the entries of a Mapping in order. The slice is shared with v.
func (v *Value) Fields() []Field {
	if v.Kind() != Mapping {
		return nil
	}
	return v.fields
}

// Len returns the number of entries of a Mapping or Sequence, and 0 otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case Mapping:
		return len(v.fields)
	case Sequence:
		return len(v.items)
	default:
		return 0
	}
}

// Has reports whether a Mapping contains key.
func (v *Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Get looks up key in a Mapping.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != Mapping {
		return nil, false
	}
	i, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.fields[i].Value, true
}

// Set stores val under key. An existing key keeps its position; a new key is
// appended. Set is a no-op unless v is a Mapping.
func (v *Value) Set(key string, val *Value) {
	if v.Kind() != Mapping {
		return
	}
	if val == nil {
		val = NewNull()
	}
	if v.index == nil {
		v.reindex()
	}
	if i, ok := v.index[key]; ok {
		v.fields[i].Value = val
		return
	}
	v.index[key] = len(v.fields)
	v.fields = append(v.fields, Field{Key: key, Value: val})
}

// Delete removes key from a Mapping and reports whether it was present.
func (v *Value) Delete(key string) bool {
	if v.Kind() != Mapping {
		return false
	}
	i, ok := v.index[key]
	if !ok {
		return false
	}
	v.fields = append(v.fields[:i], v.fields[i+1:]...)
	v.reindex()
	return true
}

func (v *Value) reindex() {
	v.index = make(map[string]int, len(v.fields))
	for i, f := range v.fields {
		v.index[f.Key] = i
	}
}
