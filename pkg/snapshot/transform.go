package snapshot

import "fmt"

// TransformFunc rewrites a snapshot value before display (e.g. to redact fields).
type TransformFunc func(state any) (any, error)

// Warner receives transform failures. *slog.Logger satisfies it.
type Warner interface {
	Warn(msg string, args ...any)
}

// ApplyTransform runs fn on value. A nil fn returns value untouched. If fn returns an
// error or panics, the failure is reported to w and value is returned instead.
func ApplyTransform(value any, fn TransformFunc, w Warner) (out any) {
	if fn == nil {
		return value
	}

	defer func() {
		if r := recover(); r != nil {
			warn(w, fmt.Errorf("%w: panic: %v", ErrTransform, r))
			out = value
		}
	}()

	res, err := fn(value)
	if err != nil {
		warn(w, fmt.Errorf("%w: %w", ErrTransform, err))
		return value
	}
	return res
}

func warn(w Warner, err error) {
	if w == nil {
		return
	}
	w.Warn("state transformer failed", "error", err)
}
