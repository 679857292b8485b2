package logger

import (
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/storelog/internal/logging"
	"github.com/aretw0/storelog/pkg/metrics"
	"github.com/aretw0/storelog/pkg/sink"
	"github.com/aretw0/storelog/pkg/snapshot"
	"github.com/aretw0/storelog/pkg/store"
)

// PluginName is the key of the plugin in store.WithPluginOptions.
const PluginName = "logger"

// Plugin logs the actions of every store it is installed on.
type Plugin struct {
	defaults    Config
	hasDefaults bool
	global      Config
	logger      *slog.Logger
	now         func() time.Time
	metrics     *metrics.Collector
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the structured logger that receives diagnostics and one trace record
// per logged action. Transform warnings go to it and to the sink.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// WithClock overrides the time source used for timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(p *Plugin) {
		p.now = now
	}
}

// WithMetrics records every intercepted action on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Plugin) {
		p.metrics = c
	}
}

// WithDefaults replaces the bottom configuration layer (Defaults()).
func WithDefaults(defaults Config) Option {
	return func(p *Plugin) {
		p.defaults = defaults
		p.hasDefaults = true
	}
}

// New creates the plugin with global as the global configuration layer.
func New(global Config, opts ...Option) *Plugin {
	p := &Plugin{
		global: global,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if !p.hasDefaults {
		p.defaults = Defaults()
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	return p
}

func (p *Plugin) Name() string { return PluginName }

// Install resolves the configuration of the store and subscribes to its actions.
// Invalid per-store options are reported and ignored.
func (p *Plugin) Install(ctx store.PluginContext) {
	id := ctx.Store.ID()

	perStore, enabled, err := StoreConfig(ctx.Options)
	if err != nil {
		p.logger.Warn("ignoring per-store logger options", "store", id, "error", err)
	}
	if !enabled {
		p.logger.Debug("logger disabled for store", "store", id)
		return
	}

	eff := Resolve(p.defaults, p.global, perStore)
	if !eff.Enabled {
		return
	}
	if eff.Sink == nil {
		eff.Sink = sink.NewConsole(nil)
	}

	ctx.Store.OnAction(func(a *store.ActionContext) {
		p.intercept(eff, a)
	})
}

// Allows applies the include list, the exclude list and the filter, in that order.
func (e Effective) Allows(a *store.ActionContext) bool {
	if len(e.IncludeActions) > 0 && !slices.Contains(e.IncludeActions, a.Name) {
		return false
	}
	if len(e.ExcludeActions) > 0 && slices.Contains(e.ExcludeActions, a.Name) {
		return false
	}
	if e.Filter != nil && !e.Filter(a) {
		return false
	}
	return true
}

func (e Effective) snapshotOptions() []snapshot.Option {
	return []snapshot.Option{
		snapshot.WithDeep(e.DeepClone),
		snapshot.WithMaxDepth(e.MaxDepth),
		snapshot.WithTransform(e.StateTransformer),
	}
}

func (p *Plugin) intercept(eff Effective, a *store.ActionContext) {
	if !eff.Allows(a) {
		return
	}

	opts := eff.snapshotOptions()
	before := snapshot.Take(a.State(), opts...)
	start := p.now()

	finish := func(err error) {
		after := snapshot.Take(a.State(), opts...)
		e := Entry{
			ActionID:  a.ID,
			Store:     a.StoreID,
			Action:    a.Name,
			Args:      a.Args,
			Err:       err,
			StartedAt: start,
			Duration:  p.now().Sub(start),
			Before:    before,
			After:     after,
			Changed:   snapshot.Changed(before, after),
		}

		p.metrics.Observe(e.Store, e.Action, err != nil, e.Changed, e.Duration)
		if err != nil && !eff.ShowErrors {
			return
		}

		p.write(eff, e)
		attrs := []any{
			"store", e.Store,
			"action", e.Action,
			"id", e.ActionID,
			"changed", e.Changed,
			"duration", e.Duration,
		}
		if err != nil {
			attrs = append(attrs, "error", err)
		}
		p.logger.Log(a.Context(), eff.LogLevel.Slog(), "action logged", attrs...)
	}

	a.After(func(any) { finish(nil) })
	a.OnError(finish)
}
