package sink

import "github.com/aretw0/storelog/pkg/snapshot"

// Sink is the capability set the action logger needs. A nil payload means "no payload".
type Sink interface {
	Log(msg, style string, payload any)
	Group(msg, style string, payload any)
	GroupCollapsed(msg, style string, payload any)
	GroupEnd()
}

// Multi fans every call out to each of its sinks, in order.
type Multi []Sink

func (m Multi) Log(msg, style string, payload any) {
	for _, s := range m {
		s.Log(msg, style, payload)
	}
}

func (m Multi) Group(msg, style string, payload any) {
	for _, s := range m {
		s.Group(msg, style, payload)
	}
}

func (m Multi) GroupCollapsed(msg, style string, payload any) {
	for _, s := range m {
		s.GroupCollapsed(msg, style, payload)
	}
}

func (m Multi) GroupEnd() {
	for _, s := range m {
		s.GroupEnd()
	}
}

// printable turns payload into an acyclic tree of plain values that encoders and fmt
// can walk without recursing forever.
func printable(payload any) any {
	out, _ := snapshot.Clone(payload, snapshot.Unlimited)
	return out
}
