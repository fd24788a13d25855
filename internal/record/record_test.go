package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	input := `{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x",2.50,{"k":"v"}]}`

	v, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := v.String(); got != input {
		t.Errorf("round trip mismatch\n got: %s\nwant: %s", got, input)
	}

	var keys []string
	for _, f := range v.Fields() {
		keys = append(keys, f.Key)
	}
	if strings.Join(keys, ",") != "zeta,alpha,mid" {
		t.Errorf("unexpected key order: %v", keys)
	}
}

func TestParse_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
	}{
		{"Null", `null`, Null},
		{"True", `true`, Boolean},
		{"Number", `12345678901234567890`, Number},
		{"Float", `-1.5e10`, Number},
		{"String", `"hello"`, String},
		{"EmptySequence", `[]`, Sequence},
		{"EmptyMapping", `{}`, Mapping},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse([]byte(tc.input))
			if err != nil {
				t.Fatalf("Parse(%s) failed: %v", tc.input, err)
			}
			if v.Kind() != tc.kind {
				t.Errorf("Parse(%s).Kind() = %s, want %s", tc.input, v.Kind(), tc.kind)
			}
			if got := v.String(); got != tc.input {
				t.Errorf("String() = %s, want %s", got, tc.input)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte(`{"a":1} {"b":2}`)); !errors.Is(err, ErrTrailingData) {
		t.Errorf("expected ErrTrailingData, got %v", err)
	}
	if _, err := Parse([]byte(`{"a":`)); err == nil {
		t.Error("expected error for truncated input")
	}
	if _, err := Parse(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestParse_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"b":2,"a":3}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := v.String(); got != `{"a":3,"b":2}` {
		t.Errorf("got %s", got)
	}
}

func TestMapping_SetGetDelete(t *testing.T) {
	m := NewMapping()
	m.Set("id", NewString("w1"))
	m.Set("name", NewString("Flow"))
	m.Set("createdAt", NewString("t1"))

	if !m.Delete("id") {
		t.Fatal("Delete(id) should report true")
	}
	if m.Delete("id") {
		t.Fatal("second Delete(id) should report false")
	}
	if m.Has("id") {
		t.Fatal("id should be gone")
	}

	name, ok := m.Get("name")
	if !ok {
		t.Fatal("name missing after delete of earlier key")
	}
	if s, _ := name.AsString(); s != "Flow" {
		t.Errorf("name = %q, want Flow", s)
	}

	m.Set("name", NewString("Renamed"))
	if got := m.String(); got != `{"name":"Renamed","createdAt":"t1"}` {
		t.Errorf("unexpected mapping after replace: %s", got)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestNonMappingAccessorsAreSafe(t *testing.T) {
	var nilValue *Value
	if !nilValue.IsNull() {
		t.Error("nil value should be null")
	}
	if _, ok := nilValue.Get("x"); ok {
		t.Error("Get on nil should fail")
	}

	s := NewString("x")
	s.Set("k", NewNull())
	if s.Delete("k") {
		t.Error("Delete on string should be a no-op")
	}
	if got := s.String(); got != `"x"` {
		t.Errorf("string mutated by mapping ops: %s", got)
	}
}

func TestSetStringReplacesContainer(t *testing.T) {
	v, err := Parse([]byte(`{"a":{"b":[1,2]}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	inner, _ := v.Get("a")
	inner.SetString("gone")
	if got := v.String(); got != `{"a":"gone"}` {
		t.Errorf("got %s", got)
	}
}

func TestEncodeJSON_IndentAndHTML(t *testing.T) {
	v, err := Parse([]byte(`{"html":"<b>&</b>","list":[],"obj":{},"n":[1,{"x":null}]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := v.EncodeJSON(&buf, "  "); err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}

	want := `{
  "html": "<b>&</b>",
  "list": [],
  "obj": {},
  "n": [
    1,
    {
      "x": null
    }
  ]
}
`
	if buf.String() != want {
		t.Errorf("unexpected output\n got: %s\nwant: %s", buf.String(), want)
	}
}

func TestEncodeJSON_EscapesControlCharacters(t *testing.T) {
	v := NewMapping()
	v.Set("s", NewString("line1\nline2\t\"quoted\""))

	var buf bytes.Buffer
	if err := v.EncodeJSON(&buf, ""); err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded["s"] != "line1\nline2\t\"quoted\"" {
		t.Errorf("string did not survive encoding: %q", decoded["s"])
	}
}

func TestMarshalJSON_InvalidNumber(t *testing.T) {
	v := NewNumber(json.Number("not-a-number"))
	if _, err := v.MarshalJSON(); err == nil {
		t.Error("expected error for invalid number literal")
	}
}

func TestUnmarshalJSON_Embedded(t *testing.T) {
	var envelope struct {
		Data *Value `json:"data"`
	}
	if err := json.Unmarshal([]byte(`{"data":{"b":1,"a":2}}`), &envelope); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got := envelope.Data.String(); got != `{"b":1,"a":2}` {
		t.Errorf("got %s", got)
	}
}

func TestWalk_VisitsKeyedAndUnkeyed(t *testing.T) {
	v, err := Parse([]byte(`{"a":"1","list":["2",{"b":"3"}],"n":null}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var visits []string
	err = Walk(v, func(key string, keyed bool, v *Value) error {
		if s, ok := v.AsString(); ok {
			if keyed {
				visits = append(visits, key+"="+s)
			} else {
				visits = append(visits, "[]="+s)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	if got := strings.Join(visits, " "); got != "a=1 []=2 b=3" {
		t.Errorf("unexpected visit order: %s", got)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	v, _ := Parse([]byte(`[1,2,3]`))
	stop := errors.New("stop")
	count := 0
	err := Walk(v, func(string, bool, *Value) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected stop error, got %v", err)
	}
	if count != 2 {
		t.Errorf("walk continued after error: %d visits", count)
	}
}

func TestWalk_DeepNesting(t *testing.T) {
	depth := 5000
	input := strings.Repeat(`{"k":`, depth) + `"leaf"` + strings.Repeat(`}`, depth)
	v, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	leaves := 0
	_ = Walk(v, func(_ string, _ bool, v *Value) error {
		if v.Kind() == String {
			leaves++
		}
		return nil
	})
	if leaves != 1 {
		t.Errorf("expected 1 leaf, got %d", leaves)
	}
}
