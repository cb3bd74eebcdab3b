package resource

import (
	"fmt"
	"reflect"
)

// Merge deep-merges overlay onto base and returns the result. Neither input
// is modified and the result shares no containers with them.
//
//   - two sequences merge index by index; overlay elements past the end of
//     base are appended
//   - two maps merge key by key; keys only in base are kept
//   - anything else takes the overlay value, unless overlay is nil, in which
//     case base is kept
func Merge(base, overlay any) any {
	return merge(Normalize(base), Normalize(overlay))
}

// merge expects normalized inputs. It builds new containers along merged
// paths and shares untouched subtrees with its inputs.
func merge(base, overlay any) any {
	if overlay == nil {
		return base
	}
	if base == nil {
		return overlay
	}
	switch b := base.(type) {
	case []any:
		if o, ok := overlay.([]any); ok {
			out := make([]any, len(b), max(len(b), len(o)))
			copy(out, b)
			for i, v := range o {
				if i < len(out) {
					out[i] = merge(out[i], v)
				} else {
					out = append(out, v)
				}
			}
			return out
		}
	case map[string]any:
		if o, ok := overlay.(map[string]any); ok {
			out := make(map[string]any, len(b)+len(o))
			for k, v := range b {
				out[k] = v
			}
			for k, v := range o {
				if v == nil {
					continue
				}
				out[k] = merge(b[k], v)
			}
			return out
		}
	}
	return overlay
}

// Normalize deep-copies v into the canonical resource shape: maps become
// map[string]any, sequences become []any, scalars are kept as they are.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Normalize(e)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = e
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = Normalize(e)
		}
		return out
	case string, bool, float64, int, int64:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	}
	return v
}

func normalizeTree(m map[string]any) map[string]any {
	if tree, ok := Normalize(m).(map[string]any); ok {
		return tree
	}
	return map[string]any{}
}
