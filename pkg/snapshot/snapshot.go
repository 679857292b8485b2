package snapshot

// Unlimited disables the depth limit of a deep snapshot.
const Unlimited = -1

// Snapshot is a point-in-time copy of a value.
type Snapshot struct {
	// Value holds the copied graph.
	Value any

	// MaxDepth is the depth limit that was applied (Unlimited when none).
	MaxDepth int

	// Deep reports whether the whole graph was copied or only its top level.
	Deep bool

	// Truncated is set when at least one node was replaced by a Sentinel.
	Truncated bool

	transform TransformFunc
}

type options struct {
	deep      bool
	maxDepth  int
	transform TransformFunc
}

// Option configures how a Snapshot is taken.
type Option func(*options)

// Deep selects a recursive copy of the whole value graph.
func Deep() Option {
	return func(o *options) {
		o.deep = true
	}
}

// Shallow selects a copy of the top-level container only (the default).
func Shallow() Option {
	return func(o *options) {
		o.deep = false
	}
}

// WithDeep selects deep or shallow mode from a flag.
func WithDeep(deep bool) Option {
	return func(o *options) {
		o.deep = deep
	}
}

// WithMaxDepth limits the recursion of a deep snapshot. The root is depth 0.
// Negative values mean Unlimited.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 0 {
			depth = Unlimited
		}
		o.maxDepth = depth
	}
}

// WithTransform attaches a function applied by View before the snapshot is displayed.
func WithTransform(fn TransformFunc) Option {
	return func(o *options) {
		o.transform = fn
	}
}

// Take copies value according to opts.
func Take(value any, opts ...Option) *Snapshot {
	o := options{maxDepth: Unlimited}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Snapshot{
		MaxDepth:  o.maxDepth,
		Deep:      o.deep,
		transform: o.transform,
	}

	if o.deep {
		s.Value, s.Truncated = Clone(value, o.maxDepth)
	} else {
		s.Value = ShallowCopy(value)
	}

	return s
}

// View returns the value meant for display: the snapshot passed through its transform.
// A failing transform is reported to w and the untransformed value is returned.
func (s *Snapshot) View(w Warner) any {
	if s == nil {
		return nil
	}
	return ApplyTransform(s.Value, s.transform, w)
}
