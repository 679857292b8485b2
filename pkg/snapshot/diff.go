package snapshot

import (
	"reflect"
)

// Diff calculates the top-level changes between two snapshots of record-like state
// (structs or string-keyed maps). Added and modified keys carry the new value,
// deleted keys are present with a nil value.
// If before is nil, every key of after is reported (initial load).
// It returns nil when nothing changed or when after is not record-like.
func Diff(before, after *Snapshot) map[string]any {
	if after == nil {
		return nil
	}
	newFields, ok := fieldsOf(after.Value)
	if !ok {
		return nil
	}

	delta := make(map[string]any)

	var oldFields map[string]any
	if before != nil {
		oldFields, _ = fieldsOf(before.Value)
	}

	// Added or modified
	for k, newVal := range newFields {
		oldVal, exists := oldFields[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	// Deletions
	for k := range oldFields {
		if _, exists := newFields[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// fieldsOf exposes the top level of a record-like value as a map.
func fieldsOf(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case Record:
		return m, true
	case map[string]any:
		return m, true
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			name, ok := fieldName(t.Field(i))
			if !ok {
				continue
			}
			out[name] = v.Field(i).Interface()
		}
		return out, true
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	}
	return nil, false
}
