package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Changed reports whether two snapshots differ.
//
// Both values are encoded to canonical JSON (map keys sorted) and compared. When either
// side cannot be encoded the pair is reported as changed, so a real update is never
// hidden.
func Changed(before, after *Snapshot) bool {
	if before == after {
		return false
	}
	if before == nil || after == nil {
		return true
	}

	a, err := Canonical(before.Value)
	if err != nil {
		return true
	}
	b, err := Canonical(after.Value)
	if err != nil {
		return true
	}
	return !bytes.Equal(a, b)
}

// Equal reports whether two snapshots hold the same content. It is the negation of
// Changed.
func Equal(before, after *Snapshot) bool {
	return !Changed(before, after)
}

// Canonical encodes v into the comparable form used by Changed.
// Panics raised by custom marshalers are converted into ErrSerialization.
func Canonical(v any) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrSerialization, r)
		}
	}()

	out, err = json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return out, nil
}
