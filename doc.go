/*
Package storelog logs the actions of in-process state stores.

A store owns a state value and a set of named actions that mutate it. The logger plugin
subscribes to every action of every store it is installed on, snapshots the state before
and after the action and writes a grouped record to a sink: the previous state, the
action with its arguments, the next state and whether anything changed.

# Packages

  - pkg/store: the state container (Root, Define, Store, ActionContext, Plugin).
  - pkg/logger: the action logging plugin and its layered configuration.
  - pkg/snapshot: shallow and deep copies, change detection, transforms and diffs.
  - pkg/sink: output back-ends (terminal console, slog records, in-memory recorder).
  - pkg/metrics: Prometheus collectors for intercepted actions.

# Usage

	root := store.NewRoot(store.WithPlugins(logger.New(logger.Config{
		ShowDuration: logger.Bool(true),
	})))

	counter, err := store.Define(root, "counter", Counter{})
	if err != nil {
		log.Fatal(err)
	}
	counter.Action("increment", func(ctx context.Context, c *Counter, _ ...any) (any, error) {
		c.Count++
		return c.Count, nil
	})

	counter.Dispatch(ctx, "increment")

Per-store settings override the global ones:

	store.Define(root, "cart", Cart{}, store.WithPluginOptions(logger.PluginName, map[string]any{
		"deep_clone": true,
		"max_depth":  2,
	}))

Passing false instead of a map turns logging off for that store.

# CLI

The storelog command runs a demo counter store through the logger:

	storelog demo --deep --max-depth 2 --duration
*/
package storelog
