package snapshot

import (
	"bytes"
	"encoding"
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// Sentinel marks content that was elided from a deep snapshot.
type Sentinel string

const (
	// MaxDepthReached replaces composite nodes at or beyond the depth limit.
	MaxDepthReached Sentinel = "[Max Depth Reached]"

	// CircularReference replaces nodes that refer back to one of their ancestors.
	CircularReference Sentinel = "[Circular Reference]"
)

// Record is the deep copy of a struct, keyed by field name.
type Record map[string]any

var (
	timeType          = reflect.TypeOf(time.Time{})
	regexpType        = reflect.TypeOf((*regexp.Regexp)(nil))
	anyType           = reflect.TypeOf((*any)(nil)).Elem()
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// identity of a reference value. Slices are keyed by length too, so two windows over
// the same backing array are not mistaken for each other.
type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

type walker struct {
	maxDepth  int
	visiting  map[identity]struct{}
	truncated bool
}

// Clone deep-copies value up to maxDepth (Unlimited when negative) and reports whether
// any node was replaced by a Sentinel.
//
// Only identities on the current path count as visited: a node shared by two sibling
// branches is copied twice, and only a true cycle yields CircularReference.
func Clone(value any, maxDepth int) (any, bool) {
	if maxDepth < 0 {
		maxDepth = Unlimited
	}
	w := &walker{
		maxDepth: maxDepth,
		visiting: make(map[identity]struct{}),
	}
	out := w.clone(reflect.ValueOf(value), 0)
	return out, w.truncated
}

func (w *walker) clone(v reflect.Value, depth int) any {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}
	if out, ok := encoded(v); ok {
		return out
	}
	if v.Kind() == reflect.Pointer && !v.IsNil() && isLeafKind(v.Elem().Kind()) {
		return v.Elem().Interface()
	}
	if !isComposite(v) {
		return v.Interface()
	}

	if w.maxDepth != Unlimited && depth >= w.maxDepth {
		w.truncated = true
		return MaxDepthReached
	}

	if id, ok := identityOf(v); ok {
		if _, seen := w.visiting[id]; seen {
			w.truncated = true
			return CircularReference
		}
		w.visiting[id] = struct{}{}
		defer delete(w.visiting, id)
	}

	switch v.Type() {
	case timeType:
		return v.Interface().(time.Time)
	case regexpType:
		return regexp.MustCompile(v.Interface().(*regexp.Regexp).String())
	}

	switch v.Kind() {
	case reflect.Pointer:
		// Pointers are transparent: the target lives at the same depth.
		return w.clone(v.Elem(), depth)
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = w.clone(v.Index(i), depth+1)
		}
		return out
	case reflect.Map:
		if isSetLike(v.Type()) {
			out := reflect.MakeMapWithSize(v.Type(), v.Len())
			iter := v.MapRange()
			for iter.Next() {
				out.SetMapIndex(iter.Key(), iter.Value())
			}
			return out.Interface()
		}
		out := reflect.MakeMapWithSize(reflect.MapOf(v.Type().Key(), anyType), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), anyValue(w.clone(iter.Value(), depth+1)))
		}
		return out.Interface()
	case reflect.Struct:
		t := v.Type()
		out := make(Record, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			name, ok := fieldName(t.Field(i))
			if !ok {
				continue
			}
			out[name] = w.clone(v.Field(i), depth+1)
		}
		return out
	}

	return v.Interface()
}

// encoded copies values that define their own JSON or text encoding (big.Int, decimals,
// net.IP...) as the decoded form of that encoding. Their in-memory layout is often
// unexported and shares storage with the source. Numbers decode as json.Number.
// Leaf kinds, time values and regexps keep their regular handling.
func encoded(v reflect.Value) (out any, ok bool) {
	t := v.Type()
	if isLeafKind(t.Kind()) || t == timeType || t == regexpType ||
		(t.Kind() == reflect.Pointer && (t.Elem() == timeType || isLeafKind(t.Elem().Kind()))) {
		return nil, false
	}

	var target any
	switch {
	case t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType):
		if (t.Kind() == reflect.Pointer || t.Kind() == reflect.Map || t.Kind() == reflect.Slice) && v.IsNil() {
			return nil, false
		}
		target = v.Interface()
	case reflect.PointerTo(t).Implements(jsonMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType):
		p := reflect.New(t)
		p.Elem().Set(v)
		target = p.Interface()
	default:
		return nil, false
	}

	defer func() {
		if r := recover(); r != nil {
			out, ok = nil, false
		}
	}()

	b, err := json.Marshal(target)
	if err != nil {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	return out, true
}

// isComposite reports whether v is walked rather than returned as-is.
// Nil references and structs without exported fields are treated as leaves.
func isComposite(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return !v.IsNil()
	case reflect.Array:
		return true
	case reflect.Struct:
		return v.Type() == timeType || hasExportedFields(v.Type())
	}
	return false
}

func isLeafKind(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return false
	}
	return true
}

func identityOf(v reflect.Value) (identity, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		return identity{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.Slice:
		if v.Len() == 0 {
			return identity{}, false
		}
		return identity{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}, true
	}
	return identity{}, false
}

// isSetLike matches map[K]struct{}, the usual Go set.
func isSetLike(t reflect.Type) bool {
	e := t.Elem()
	return e.Kind() == reflect.Struct && e.NumField() == 0
}

func hasExportedFields(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}

// fieldName returns the key a struct field is copied under, honouring json tags.
func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}

func anyValue(x any) reflect.Value {
	if x == nil {
		return reflect.Zero(anyType)
	}
	return reflect.ValueOf(x)
}
