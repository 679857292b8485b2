package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/storelog/internal/logging"
	"github.com/google/uuid"
)

// Root owns the plugins shared by its stores.
// Safe for concurrent use.
type Root struct {
	mu      sync.RWMutex
	plugins []Plugin
	stores  map[string]Handle
	logger  *slog.Logger
	now     func() time.Time
}

// RootOption configures a Root.
type RootOption func(*Root)

// WithLogger sets the structured logger used to report misbehaving listeners.
func WithLogger(logger *slog.Logger) RootOption {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithClock overrides the time source used for ActionContext.StartedAt.
func WithClock(now func() time.Time) RootOption {
	return func(r *Root) {
		r.now = now
	}
}

// WithPlugins registers plugins at construction time.
func WithPlugins(plugins ...Plugin) RootOption {
	return func(r *Root) {
		r.plugins = append(r.plugins, plugins...)
	}
}

// NewRoot creates an empty Root.
func NewRoot(opts ...RootOption) *Root {
	r := &Root{
		stores: make(map[string]Handle),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Use adds plugins. They apply to stores defined afterwards.
func (r *Root) Use(plugins ...Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = append(r.plugins, plugins...)
}

// Stores returns the IDs of the defined stores, sorted.
func (r *Root) Stores() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.stores))
	for id := range r.stores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the store registered under id.
func (r *Root) Lookup(id string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.stores[id]
	return h, ok
}

// ActionFunc is the body of an action. It mutates state in place and may return a result.
type ActionFunc[S any] func(ctx context.Context, state *S, args ...any) (any, error)

type listenerEntry struct {
	id int
	fn ActionListener
}

// Store holds a state value of type S and its actions.
//
// Registering actions and listeners is safe for concurrent use. Dispatch is not:
// actions mutate the state in place, so callers must serialize dispatches on a store.
type Store[S any] struct {
	id     string
	state  S
	logger *slog.Logger
	now    func() time.Time

	mu             sync.RWMutex
	actions        map[string]ActionFunc[S]
	listeners      []listenerEntry
	nextListenerID int
	pluginOptions  map[string]any
}

// Option configures a Store at definition time.
type Option func(*storeConfig)

type storeConfig struct {
	pluginOptions map[string]any
}

// WithPluginOptions attaches per-store options for the plugin called name.
func WithPluginOptions(name string, options any) Option {
	return func(c *storeConfig) {
		c.pluginOptions[name] = options
	}
}

// Define creates a store on root and installs root's plugins on it.
func Define[S any](root *Root, id string, initial S, opts ...Option) (*Store[S], error) {
	cfg := storeConfig{pluginOptions: make(map[string]any)}
	for _, opt := range opts {
		opt(&cfg)
	}

	root.mu.Lock()
	if _, exists := root.stores[id]; exists {
		root.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDuplicateStore, id)
	}
	s := &Store[S]{
		id:            id,
		state:         initial,
		logger:        root.logger.With("store", id),
		now:           root.now,
		actions:       make(map[string]ActionFunc[S]),
		pluginOptions: cfg.pluginOptions,
	}
	root.stores[id] = s
	plugins := slices.Clone(root.plugins)
	root.mu.Unlock()

	for _, p := range plugins {
		s.install(p)
	}

	return s, nil
}

func (s *Store[S]) install(p Plugin) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("plugin install panicked", "plugin", p.Name(), "panic", r)
		}
	}()
	p.Install(PluginContext{
		Store:   s,
		Options: s.pluginOptions[p.Name()],
	})
}

// ID returns the store identifier.
func (s *Store[S]) ID() string {
	return s.id
}

// State returns a pointer to the live state.
func (s *Store[S]) State() *S {
	return &s.state
}

// StateRef returns the live state pointer as an interface value.
func (s *Store[S]) StateRef() any {
	return &s.state
}

// Action registers (or replaces) the action called name. It returns s for chaining.
func (s *Store[S]) Action(name string, fn ActionFunc[S]) *Store[S] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[name] = fn
	return s
}

// Actions returns the registered action names, sorted.
func (s *Store[S]) Actions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.actions))
	for name := range s.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnAction registers a listener for every dispatched action.
func (s *Store[S]) OnAction(listener ActionListener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListenerID
	s.nextListenerID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: listener})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool {
			return e.id == id
		})
	}
}

// Dispatch runs the action called name with args.
//
// Listeners are notified first. If the action fails (or panics, see ErrActionPanic) the
// OnError callbacks run and the error is returned; otherwise the After callbacks run.
// Panics raised by listeners and callbacks are logged and never reach the caller.
func (s *Store[S]) Dispatch(ctx context.Context, name string, args ...any) (any, error) {
	s.mu.RLock()
	fn, ok := s.actions[name]
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s (store %s)", ErrUnknownAction, name, s.id)
	}

	actx := &ActionContext{
		ID:        uuid.NewString(),
		Name:      name,
		Args:      args,
		StoreID:   s.id,
		StartedAt: s.now(),
		ctx:       ctx,
		state:     s.StateRef,
	}

	for _, l := range listeners {
		s.guard("listener", name, func() { l.fn(actx) })
	}

	result, err := s.invoke(ctx, fn, args)
	if err != nil {
		for _, cb := range actx.onError {
			s.guard("onError callback", name, func() { cb(err) })
		}
		return nil, err
	}

	for _, cb := range actx.after {
		s.guard("after callback", name, func() { cb(result) })
	}
	return result, nil
}

func (s *Store[S]) invoke(ctx context.Context, fn ActionFunc[S], args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%w: %v", ErrActionPanic, r)
		}
	}()
	return fn(ctx, &s.state, args...)
}

func (s *Store[S]) guard(kind, action string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn(kind+" panicked", "action", action, "panic", r)
		}
	}()
	fn()
}
