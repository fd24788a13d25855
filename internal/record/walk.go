package record

// WalkFunc is called by Walk for every value reachable from the root.
//
// key is the mapping key the value is stored under. keyed is false for the
// root and for sequence elements, in which case key is empty.
type WalkFunc func(key string, keyed bool, v *Value) error

// Walk visits v and all of its descendants depth first, parents before
// children. Mapping entries are visited in key order of the document.
// Nil values are skipped. The first error returned by fn stops the walk.
//
// fn may mutate the value it is given (for example with SetString), but must
// not add or remove entries of the container currently being iterated.
func Walk(v *Value, fn WalkFunc) error {
	return walk("", false, v, fn)
}

func walk(key string, keyed bool, v *Value, fn WalkFunc) error {
	if v == nil {
		return nil
	}
	if err := fn(key, keyed, v); err != nil {
		return err
	}
	switch v.kind {
	case Mapping:
		for _, f := range v.fields {
			if err := walk(f.Key, true, f.Value, fn); err != nil {
				return err
			}
		}
	case Sequence:
		for _, item := range v.items {
			if err := walk("", false, item, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
