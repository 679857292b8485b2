package store

import (
	"context"
	"time"
)

// ActionContext describes one dispatched action. Listeners receive it before the action
// runs and may register callbacks for its outcome.
type ActionContext struct {
	// ID uniquely identifies this dispatch.
	ID string

	// Name is the action name.
	Name string

	// Args are the arguments given to Dispatch.
	Args []any

	// StoreID identifies the owning store.
	StoreID string

	// StartedAt is the dispatch time.
	StartedAt time.Time

	ctx     context.Context
	state   func() any
	after   []func(result any)
	onError []func(err error)
}

// Context returns the context the action was dispatched with.
func (a *ActionContext) Context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// State returns a pointer to the live store state.
func (a *ActionContext) State() any {
	if a.state == nil {
		return nil
	}
	return a.state()
}

// After registers fn to run when the action succeeds.
func (a *ActionContext) After(fn func(result any)) {
	a.after = append(a.after, fn)
}

// OnError registers fn to run when the action fails.
func (a *ActionContext) OnError(fn func(err error)) {
	a.onError = append(a.onError, fn)
}

// ActionListener observes dispatched actions.
type ActionListener func(*ActionContext)
