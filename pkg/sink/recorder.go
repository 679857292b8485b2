package sink

import "sync"

// Kind identifies the Sink method that produced an Entry.
type Kind string

const (
	KindLog            Kind = "log"
	KindGroup          Kind = "group"
	KindGroupCollapsed Kind = "groupCollapsed"
	KindGroupEnd       Kind = "groupEnd"
)

// Entry is one recorded Sink call.
type Entry struct {
	Kind    Kind
	Message string
	Style   string
	Payload any
	// Depth is the number of groups open when the call was made.
	Depth int
}

// Recorder keeps every call in memory.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	depth   int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Log(msg, style string, payload any) {
	r.add(Entry{Kind: KindLog, Message: msg, Style: style, Payload: payload})
}

func (r *Recorder) Group(msg, style string, payload any) {
	r.add(Entry{Kind: KindGroup, Message: msg, Style: style, Payload: payload})
	r.mu.Lock()
	r.depth++
	r.mu.Unlock()
}

func (r *Recorder) GroupCollapsed(msg, style string, payload any) {
	r.add(Entry{Kind: KindGroupCollapsed, Message: msg, Style: style, Payload: payload})
	r.mu.Lock()
	r.depth++
	r.mu.Unlock()
}

func (r *Recorder) GroupEnd() {
	r.mu.Lock()
	if r.depth > 0 {
		r.depth--
	}
	r.mu.Unlock()
	r.add(Entry{Kind: KindGroupEnd})
}

func (r *Recorder) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Depth = r.depth
	r.entries = append(r.entries, e)
}

// Entries returns a copy of the recorded calls.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the message of every recorded call except GroupEnd.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Kind != KindGroupEnd {
			out = append(out, e.Message)
		}
	}
	return out
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.depth = 0
}
