// Package demo provides the example counter store driven by `storelog demo`.
package demo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/storelog/pkg/store"
)

// StoreID is the ID of the counter store.
const StoreID = "counter"

var (
	ErrIntentional = errors.New("intentional error")
	ErrInvalidArgs = errors.New("invalid action arguments")
)

type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

type User struct {
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	Preferences Preferences `json:"preferences"`
}

// Counter is the state of the counter store.
type Counter struct {
	Count   int   `json:"count"`
	History []int `json:"history"`
	User    User  `json:"user"`
}

// InitialCounter returns the state a fresh (or reset) counter starts from.
func InitialCounter() Counter {
	return Counter{
		History: []int{},
		User: User{
			Name: "Guest",
			Preferences: Preferences{
				Theme:         "light",
				Notifications: true,
			},
		},
	}
}

// DefineCounter defines the counter store on root with all its actions.
func DefineCounter(root *store.Root, opts ...store.Option) (*store.Store[Counter], error) {
	s, err := store.Define(root, StoreID, InitialCounter(), opts...)
	if err != nil {
		return nil, err
	}

	s.Action("increment", increment).
		Action("decrement", decrement).
		Action("incrementBy", incrementBy).
		Action("updateUser", updateUser).
		Action("updatePreferences", updatePreferences).
		Action("incrementAsync", incrementAsync).
		Action("incrementWithError", incrementWithError).
		Action("clearHistory", clearHistory).
		Action("reset", reset)

	return s, nil
}

func (c *Counter) record() {
	c.History = append(c.History, c.Count)
}

func increment(_ context.Context, c *Counter, _ ...any) (any, error) {
	c.Count++
	c.record()
	return c.Count, nil
}

func decrement(_ context.Context, c *Counter, _ ...any) (any, error) {
	c.Count--
	c.record()
	return c.Count, nil
}

// incrementBy(amount int)
func incrementBy(_ context.Context, c *Counter, args ...any) (any, error) {
	amount, err := arg[int](args, 0, "amount")
	if err != nil {
		return nil, err
	}
	c.Count += amount
	c.record()
	return c.Count, nil
}

// updateUser(name string, age int)
func updateUser(_ context.Context, c *Counter, args ...any) (any, error) {
	name, err := arg[string](args, 0, "name")
	if err != nil {
		return nil, err
	}
	age, err := arg[int](args, 1, "age")
	if err != nil {
		return nil, err
	}
	c.User.Name = name
	c.User.Age = age
	return nil, nil
}

// updatePreferences(theme string, notifications bool)
func updatePreferences(_ context.Context, c *Counter, args ...any) (any, error) {
	theme, err := arg[string](args, 0, "theme")
	if err != nil {
		return nil, err
	}
	notifications, err := arg[bool](args, 1, "notifications")
	if err != nil {
		return nil, err
	}
	c.User.Preferences.Theme = theme
	c.User.Preferences.Notifications = notifications
	return nil, nil
}

// incrementAsync([delay time.Duration]) waits for delay (one second by default) before
// incrementing. Cancelling ctx aborts the wait and leaves the state untouched.
func incrementAsync(ctx context.Context, c *Counter, args ...any) (any, error) {
	delay := time.Second
	if len(args) > 0 {
		d, err := arg[time.Duration](args, 0, "delay")
		if err != nil {
			return nil, err
		}
		delay = d
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	c.Count++
	c.record()
	return c.Count, nil
}

func incrementWithError(_ context.Context, _ *Counter, _ ...any) (any, error) {
	return nil, ErrIntentional
}

func clearHistory(_ context.Context, c *Counter, _ ...any) (any, error) {
	c.History = []int{}
	return nil, nil
}

func reset(_ context.Context, c *Counter, _ ...any) (any, error) {
	*c = InitialCounter()
	return nil, nil
}

func arg[T any](args []any, i int, name string) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, fmt.Errorf("%w: missing %s", ErrInvalidArgs, name)
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s must be %T, got %T", ErrInvalidArgs, name, zero, args[i])
	}
	return v, nil
}
