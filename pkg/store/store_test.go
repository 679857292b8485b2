package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/storelog/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count   int
	History []int
}

func newCounter(t *testing.T, root *store.Root, opts ...store.Option) *store.Store[counter] {
	t.Helper()
	s, err := store.Define(root, "counter", counter{}, opts...)
	require.NoError(t, err)

	s.Action("increment", func(ctx context.Context, st *counter, args ...any) (any, error) {
		st.Count++
		st.History = append(st.History, st.Count)
		return st.Count, nil
	})
	s.Action("fail", func(ctx context.Context, st *counter, args ...any) (any, error) {
		return nil, errors.New("intentional")
	})
	s.Action("explode", func(ctx context.Context, st *counter, args ...any) (any, error) {
		panic("kaboom")
	})
	return s
}

func TestDispatch_RunsActionAndCallbacks(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	root := store.NewRoot(store.WithClock(func() time.Time { return fixed }))
	s := newCounter(t, root)

	var seen *store.ActionContext
	var afterResult any
	s.OnAction(func(a *store.ActionContext) {
		seen = a
		assert.Equal(t, 0, a.State().(*counter).Count, "listeners run before the action")
		a.After(func(result any) { afterResult = result })
		a.OnError(func(error) { t.Error("OnError must not run on success") })
	})

	ctx := context.Background()
	result, err := s.Dispatch(ctx, "increment", 1, "two")
	require.NoError(t, err)
	assert.Equal(t, 1, result)
	assert.Equal(t, 1, afterResult)
	assert.Equal(t, counter{Count: 1, History: []int{1}}, *s.State())

	require.NotNil(t, seen)
	assert.Equal(t, "increment", seen.Name)
	assert.Equal(t, "counter", seen.StoreID)
	assert.Equal(t, []any{1, "two"}, seen.Args)
	assert.Equal(t, fixed, seen.StartedAt)
	assert.NotEmpty(t, seen.ID)
	assert.Equal(t, ctx, seen.Context())
}

func TestDispatch_Errors(t *testing.T) {
	root := store.NewRoot()
	s := newCounter(t, root)

	var errs []error
	s.OnAction(func(a *store.ActionContext) {
		a.OnError(func(err error) { errs = append(errs, err) })
		a.After(func(any) { t.Error("After must not run on failure") })
	})

	_, err := s.Dispatch(context.Background(), "fail")
	assert.EqualError(t, err, "intentional")

	_, err = s.Dispatch(context.Background(), "explode")
	assert.ErrorIs(t, err, store.ErrActionPanic)

	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[1], store.ErrActionPanic)

	_, err = s.Dispatch(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrUnknownAction)
	assert.Len(t, errs, 2, "unknown actions never reach listeners")
}

func TestDispatch_ListenerPanicsAreContained(t *testing.T) {
	root := store.NewRoot()
	s := newCounter(t, root)

	s.OnAction(func(a *store.ActionContext) {
		a.After(func(any) { panic("after") })
		panic("listener")
	})

	assert.NotPanics(t, func() {
		_, err := s.Dispatch(context.Background(), "increment")
		assert.NoError(t, err)
	})
	assert.Equal(t, 1, s.State().Count)
}

func TestOnAction_Unsubscribe(t *testing.T) {
	root := store.NewRoot()
	s := newCounter(t, root)

	calls := 0
	unsubscribe := s.OnAction(func(*store.ActionContext) { calls++ })

	_, _ = s.Dispatch(context.Background(), "increment")
	unsubscribe()
	_, _ = s.Dispatch(context.Background(), "increment")

	assert.Equal(t, 1, calls)
}

func TestDefine_InstallsPluginsWithOptions(t *testing.T) {
	var installed []store.PluginContext
	plugin := store.PluginFunc{
		PluginName: "recorder",
		Fn:         func(ctx store.PluginContext) { installed = append(installed, ctx) },
	}

	root := store.NewRoot(store.WithPlugins(plugin))
	s := newCounter(t, root, store.WithPluginOptions("recorder", false))

	_, err := store.Define(root, "other", map[string]any{})
	require.NoError(t, err)

	require.Len(t, installed, 2)
	assert.Equal(t, "counter", installed[0].Store.ID())
	assert.Equal(t, false, installed[0].Options)
	assert.Same(t, s.State(), installed[0].Store.StateRef())
	assert.Nil(t, installed[1].Options)

	assert.Equal(t, []string{"counter", "other"}, root.Stores())
	h, ok := root.Lookup("counter")
	require.True(t, ok)
	assert.Equal(t, "counter", h.ID())
}

func TestDefine_Duplicate(t *testing.T) {
	root := store.NewRoot()
	_ = newCounter(t, root)

	_, err := store.Define(root, "counter", counter{})
	assert.ErrorIs(t, err, store.ErrDuplicateStore)
}

func TestRoot_UseAppliesToLaterStores(t *testing.T) {
	root := store.NewRoot()
	_, err := store.Define(root, "before", 0)
	require.NoError(t, err)

	var ids []string
	root.Use(store.PluginFunc{PluginName: "ids", Fn: func(ctx store.PluginContext) {
		ids = append(ids, ctx.Store.ID())
	}})

	_, err = store.Define(root, "after", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"after"}, ids)
}

func TestActions(t *testing.T) {
	s := newCounter(t, store.NewRoot())
	assert.Equal(t, []string{"explode", "fail", "increment"}, s.Actions())
}
