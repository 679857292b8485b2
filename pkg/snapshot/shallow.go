package snapshot

import "reflect"

// ShallowCopy copies the top-level container of value and shares everything below it.
// Maps and slices get a new container of the same type, a pointer gets a new pointer to
// a shallow copy of its target. Structs and arrays are already copied when boxed into an
// interface, so they are returned as they are, like every other value.
func ShallowCopy(value any) any {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return nil
	}
	return shallow(v).Interface()
}

func shallow(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(out, v)
		return out
	case reflect.Pointer:
		if v.IsNil() || v.Type() == regexpType {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(shallow(v.Elem()))
		return out
	}
	return v
}
