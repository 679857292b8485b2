/*
Package logger implements the action logging plugin for stores.

For every intercepted action the plugin snapshots the store state before the action and
after it, checks whether the state changed, and writes a group to a sink.Sink:

	▾ action 🍍 [counter] increment @14:03:11:207 ✅
	  prev state
	    count: 0
	  action
	    store: counter
	    type: increment
	  next state
	    count: 1

Configuration is layered. Defaults, the global Config given to New and the per-store
options given with store.WithPluginOptions(logger.PluginName, ...) are merged by Resolve,
field by field, with the per-store layer on top.

	root := store.NewRoot()
	root.Use(logger.New(logger.Config{
		DeepClone: logger.Bool(true),
		MaxDepth:  logger.Int(4),
	}))
*/
package logger
