package snapshot

import "errors"

// ErrSerialization is reported when a snapshot cannot be encoded into its canonical form.
var ErrSerialization = errors.New("snapshot serialization failed")

// ErrTransform is reported when a caller-supplied transform fails or panics.
var ErrTransform = errors.New("state transformer failed")
