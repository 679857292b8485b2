package demo

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/storelog/pkg/store"
)

// Step is one dispatch of the demo script.
type Step struct {
	Action string
	Args   []any
}

// Result is the outcome of a Step.
type Result struct {
	Step  Step
	Value any
	Err   error
}

// Script returns the demo sequence: every counter action once, with the async increment
// waiting for delay.
func Script(delay time.Duration) []Step {
	return []Step{
		{Action: "increment"},
		{Action: "increment"},
		{Action: "decrement"},
		{Action: "incrementBy", Args: []any{5}},
		{Action: "updateUser", Args: []any{"Ada", 36}},
		{Action: "updatePreferences", Args: []any{"dark", false}},
		{Action: "incrementAsync", Args: []any{delay}},
		{Action: "incrementWithError"},
		{Action: "clearHistory"},
		{Action: "clearHistory"},
		{Action: "reset"},
	}
}

// Run dispatches the steps in order. Action failures are part of the demo and are
// collected in the results; it stops early only when ctx is done.
func Run(ctx context.Context, s *store.Store[Counter], steps []Step) ([]Result, error) {
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		v, err := s.Dispatch(ctx, step.Action, step.Args...)
		if errors.Is(err, store.ErrUnknownAction) {
			return results, err
		}
		results = append(results, Result{Step: step, Value: v, Err: err})
	}
	return results, nil
}
