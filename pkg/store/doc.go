/*
Package store implements a small state container with named actions and action listeners.

A Root holds the plugins; every store defined on it gets each plugin installed with the
per-store options registered under the plugin's name.

	root := store.NewRoot()
	root.Use(logger.New(logger.Config{}))

	counter, err := store.Define(root, "counter", Counter{},
		store.WithPluginOptions("logger", map[string]any{"expanded": false}),
	)
	counter.Action("increment", func(ctx context.Context, s *Counter, args ...any) (any, error) {
		s.Count++
		return s.Count, nil
	})

	_, err = counter.Dispatch(ctx, "increment")

Listeners registered with OnAction run before the action body and may attach After and
OnError callbacks to the ActionContext they receive.
*/
package store
