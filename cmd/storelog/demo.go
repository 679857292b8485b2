package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/aretw0/storelog"
	"github.com/aretw0/storelog/internal/config"
	"github.com/aretw0/storelog/internal/demo"
	"github.com/aretw0/storelog/internal/logging"
	"github.com/aretw0/storelog/internal/presentation/tui"
	"github.com/aretw0/storelog/pkg/logger"
	"github.com/aretw0/storelog/pkg/metrics"
	"github.com/aretw0/storelog/pkg/sink"
	"github.com/aretw0/storelog/pkg/snapshot"
	"github.com/aretw0/storelog/pkg/store"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	formatConsole = "console"
	formatSlog    = "slog"

	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var errInvalidFlag = errors.New("invalid flag")

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the counter store through the action logger",
		Long: `Defines a counter store, installs the logger plugin and dispatches every counter
action once: increment, decrement, incrementBy, updateUser, updatePreferences,
incrementAsync, incrementWithError, clearHistory (twice) and reset.

Settings come from the config file, then STORELOG_* environment variables, then flags.`,
		RunE: runDemo,
	}

	f := cmd.Flags()
	f.String("config", "storelog.yaml", "Configuration file (ignored when missing)")
	f.Bool("deep", false, "Take deep snapshots")
	f.Int("max-depth", snapshot.Unlimited, "Depth limit of deep snapshots (negative for none)")
	f.Bool("collapsed", false, "Print collapsed groups")
	f.Bool("duration", false, "Show action durations")
	f.Bool("diff", false, "Show the fields changed by each action")
	f.StringSlice("only", nil, "Log only these actions")
	f.StringSlice("exclude", nil, "Never log these actions")
	f.String("format", formatConsole, "Output format: console or slog")
	f.String("color", colorAuto, "Colors: auto, always or never")
	f.Duration("delay", 500*time.Millisecond, "Wait of the incrementAsync action")
	f.Bool("metrics", false, "Print the collected Prometheus metrics at the end")

	return cmd
}

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func runDemo(cmd *cobra.Command, args []string) error {
	diag := diagnostics(cmd)
	out := cmd.OutOrStdout()

	path, _ := cmd.Flags().GetString("config")
	file, err := config.Load(path)
	if err != nil {
		return err
	}

	global := file.Logger
	applyFlags(cmd, &global)

	format, _ := cmd.Flags().GetString("format")
	color, _ := cmd.Flags().GetString("color")
	profile, err := colorProfile(color, out)
	if err != nil {
		return err
	}
	if global.Sink, err = newSink(format, out, profile); err != nil {
		return err
	}
	if format == formatConsole {
		tui.PrintBanner(out, profile, storelog.Version)
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}

	plugin := logger.New(global, logger.WithLogger(diag), logger.WithMetrics(collector))
	root := store.NewRoot(store.WithLogger(diag), store.WithPlugins(plugin))

	var opts []store.Option
	if o, ok := file.StoreOptions(demo.StoreID); ok {
		opts = append(opts, store.WithPluginOptions(logger.PluginName, o))
	}
	counter, err := demo.DefineCounter(root, opts...)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	delay, _ := cmd.Flags().GetDuration("delay")
	results, err := demo.Run(ctx, counter, demo.Script(delay))
	if err != nil {
		return fmt.Errorf("demo interrupted: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	diag.Info("demo finished", "actions", len(results), "failed", failed, "count", counter.State().Count)

	if printMetrics, _ := cmd.Flags().GetBool("metrics"); printMetrics {
		return writeMetrics(out, reg)
	}
	return nil
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cmd *cobra.Command, cfg *logger.Config) {
	flags := cmd.Flags()

	if flags.Changed("deep") {
		v, _ := flags.GetBool("deep")
		cfg.DeepClone = logger.Bool(v)
	}
	if flags.Changed("max-depth") {
		v, _ := flags.GetInt("max-depth")
		cfg.MaxDepth = logger.Int(v)
		if !flags.Changed("deep") && cfg.DeepClone == nil {
			// --max-depth alone implies --deep
			cfg.DeepClone = logger.Bool(true)
		}
	}
	if flags.Changed("collapsed") {
		v, _ := flags.GetBool("collapsed")
		cfg.Expanded = logger.Bool(!v)
	}
	if flags.Changed("duration") {
		v, _ := flags.GetBool("duration")
		cfg.ShowDuration = logger.Bool(v)
	}
	if flags.Changed("diff") {
		v, _ := flags.GetBool("diff")
		cfg.ShowDiff = logger.Bool(v)
	}
	if flags.Changed("only") {
		cfg.IncludeActions, _ = flags.GetStringSlice("only")
	}
	if flags.Changed("exclude") {
		cfg.ExcludeActions, _ = flags.GetStringSlice("exclude")
	}
}

// colorProfile picks the termenv profile for mode. Auto enables colors only when w is a
// terminal.
func colorProfile(mode string, w io.Writer) (termenv.Profile, error) {
	switch mode {
	case colorNever:
		return termenv.Ascii, nil
	case colorAlways:
		return termenv.TrueColor, nil
	case colorAuto:
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return termenv.EnvColorProfile(), nil
		}
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("%w: --color must be auto, always or never, got %q", errInvalidFlag, mode)
}

func newSink(format string, w io.Writer, profile termenv.Profile) (sink.Sink, error) {
	switch format {
	case formatConsole:
		return sink.NewConsole(w, sink.WithProfile(profile)), nil
	case formatSlog:
		return sink.NewSlog(logging.NewJSON(w, slog.LevelDebug), slog.LevelInfo), nil
	}
	return nil, fmt.Errorf("%w: --format must be console or slog, got %q", errInvalidFlag, format)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
