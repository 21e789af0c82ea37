package value

import "graphscript/internal/gerrors"

// IndexGet implements `v[i]` (spec §4.1). For String/Bytes the result is
// the Integer byte value; for Array the element; for Map the stored value
// or Null if the key is absent. Any other tag is an error.
func IndexGet(container, index Value) (Value, error) {
	switch container.tag {
	case String, Bytes:
		i, err := requireInt("index", index)
		if err != nil {
			return Nil(), err
		}
		if i < 0 || i >= int64(len(container.bytes)) {
			return Nil(), gerrors.New(gerrors.RangeError, "index %d out of range (len %d)", i, len(container.bytes))
		}
		return Int(int64(container.bytes[i])), nil
	case Array:
		i, err := requireInt("index", index)
		if err != nil {
			return Nil(), err
		}
		if i < 0 || i >= int64(len(container.arr)) {
			return Nil(), gerrors.New(gerrors.RangeError, "index %d out of range (len %d)", i, len(container.arr))
		}
		return container.arr[i], nil
	case Map:
		if v, ok := mapLookup(container.m, index); ok {
			return v, nil
		}
		return Nil(), nil
	default:
		return Nil(), gerrors.New(gerrors.TypeMismatch, "%s is not indexable", container.tag)
	}
}

// IndexSet implements `v[i] = x`, returning the updated container (spec
// §4.1: maps auto-insert absent keys; String/Bytes write the low byte of
// x's Integer representation). The write goes to a fresh copy of the
// container's top-level storage, so other Values sharing that storage are
// not affected.
func IndexSet(container, index, newVal Value) (Value, error) {
	switch container.tag {
	case String, Bytes:
		i, err := requireInt("index", index)
		if err != nil {
			return Nil(), err
		}
		if i < 0 || i >= int64(len(container.bytes)) {
			return Nil(), gerrors.New(gerrors.RangeError, "index %d out of range (len %d)", i, len(container.bytes))
		}
		lo := byte(toInt(newVal))
		if newVal.tag != Integer && newVal.tag != Float {
			return Nil(), gerrors.New(gerrors.TypeMismatch, "%s assignment requires an integer value, got %s", container.tag, newVal.tag)
		}
		buf := append([]byte{}, container.bytes...)
		buf[i] = lo
		container.bytes = buf
		return container, nil
	case Array:
		i, err := requireInt("index", index)
		if err != nil {
			return Nil(), err
		}
		if i < 0 || i >= int64(len(container.arr)) {
			return Nil(), gerrors.New(gerrors.RangeError, "index %d out of range (len %d)", i, len(container.arr))
		}
		arr := append([]Value{}, container.arr...)
		arr[i] = newVal.Copy()
		container.arr = arr
		return container, nil
	case Map:
		container.m = mapInsert(append([]mapEntry{}, container.m...), index, newVal)
		return container, nil
	default:
		return Nil(), gerrors.New(gerrors.TypeMismatch, "%s is not indexable", container.tag)
	}
}

// Slice implements `v[from:to]` (spec §4.1). from/to of Null default to 0
// and len(v) respectively.
func Slice(container, from, to Value) (Value, error) {
	var length int
	switch container.tag {
	case String, Bytes:
		length = len(container.bytes)
	case Array:
		length = len(container.arr)
	default:
		return Nil(), gerrors.New(gerrors.TypeMismatch, "%s is not sliceable", container.tag)
	}

	f, err := sliceBound(from, 0)
	if err != nil {
		return Nil(), err
	}
	t, err := sliceBound(to, int64(length))
	if err != nil {
		return Nil(), err
	}
	if f < 0 || t > int64(length) || f > t {
		return Nil(), gerrors.New(gerrors.RangeError, "slice [%d:%d] out of range (len %d)", f, t, length)
	}

	switch container.tag {
	case String:
		return Str(string(container.bytes[f:t])), nil
	case Bytes:
		return Byt(container.bytes[f:t]), nil
	default:
		return Arr(container.arr[f:t]), nil
	}
}

func sliceBound(v Value, dflt int64) (int64, error) {
	if v.IsNull() {
		return dflt, nil
	}
	if v.tag != Integer {
		return 0, gerrors.New(gerrors.TypeMismatch, "slice bound must be an integer or nil, got %s", v.tag)
	}
	return v.i, nil
}

// ---- map helpers: keep entries sorted by Less so iteration and ToString
// observe ascending key order (spec §5). ----

func mapLookup(entries []mapEntry, key Value) (Value, bool) {
	for _, e := range entries {
		if Equal(e.key, key) {
			return e.val, true
		}
	}
	return Nil(), false
}

func mapInsert(entries []mapEntry, key, val Value) []mapEntry {
	for i, e := range entries {
		if Equal(e.key, key) {
			entries[i].val = val.Copy()
			return entries
		}
	}
	out := append(append([]mapEntry{}, entries...), mapEntry{key: key.Copy(), val: val.Copy()})
	return sortedEntries(out)
}

// MapFromPairs builds a Map Value from evaluated (key, value) pairs,
// used by CreateMap.
func MapFromPairs(keys, vals []Value) Value {
	var entries []mapEntry
	for i := range keys {
		entries = mapInsert(entries, keys[i], vals[i])
	}
	if entries == nil {
		entries = []mapEntry{}
	}
	return Value{tag: Map, m: entries}
}

// MapEntries exposes the map's entries in ascending key order, for ForIn
// and any other consumer that needs to walk a Map value.
func MapEntries(v Value) []struct {
	Key Value
	Val Value
} {
	sorted := sortedEntries(v.m)
	out := make([]struct {
		Key Value
		Val Value
	}, len(sorted))
	for i, e := range sorted {
		out[i] = struct {
			Key Value
			Val Value
		}{e.key, e.val}
	}
	return out
}
