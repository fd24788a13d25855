// Package record models an arbitrary JSON document as a tagged union.
//
// A Value is exactly one of:
//
//   - Mapping: string keys to values, in the order they were decoded
//   - Sequence: an ordered list of values
//   - Scalar: String, Number, Boolean or Null
//
// Workflow definitions returned by the n8n API are heterogeneous: node
// parameters differ per node type and may nest arbitrarily. Rather than
// unmarshalling into map[string]any and type-switching at every level,
// callers parse into a Value, mutate it in place and encode it back. Key
// order is preserved so exported files diff cleanly against previous runs.
//
// # Usage
//
//	v, err := record.Parse(body)
//	nodes, _ := v.Get("nodes")
//	record.Walk(nodes, func(key string, keyed bool, v *record.Value) error {
//	    ...
//	})
//	v.Delete("id")
//	err = v.EncodeJSON(w, "  ")
//
// Numbers are kept as their original JSON text, so large integers and
// floats round-trip byte for byte.
package record
