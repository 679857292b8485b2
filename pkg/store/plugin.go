package store

// Handle is the type-erased view of a store given to plugins.
type Handle interface {
	ID() string
	StateRef() any
	OnAction(listener ActionListener) (unsubscribe func())
}

// PluginContext is passed to Plugin.Install for every store defined on a Root.
type PluginContext struct {
	Store Handle

	// Options holds the value registered with WithPluginOptions under the plugin name,
	// or nil when the store did not configure the plugin.
	Options any
}

// Plugin extends every store of a Root.
type Plugin interface {
	Name() string
	Install(ctx PluginContext)
}

// PluginFunc adapts a function into a Plugin.
type PluginFunc struct {
	PluginName string
	Fn         func(ctx PluginContext)
}

func (p PluginFunc) Name() string { return p.PluginName }

func (p PluginFunc) Install(ctx PluginContext) {
	if p.Fn != nil {
		p.Fn(ctx)
	}
}
