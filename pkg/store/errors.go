package store

import "errors"

// ErrUnknownAction is returned when dispatching an action that was never registered.
var ErrUnknownAction = errors.New("unknown action")

// ErrDuplicateStore is returned when a store ID is defined twice on the same Root.
var ErrDuplicateStore = errors.New("store already defined")

// ErrActionPanic wraps a panic raised by an action body.
var ErrActionPanic = errors.New("action panicked")
