package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/metrics"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	pretty     bool
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Render and diff data documents as UI trees",
		Long: `vtree turns YAML or JSON documents into UI trees using the value
inspector, reconciles them against an in-memory document and prints
the resulting HTML.

Configuration is read from vtree.json in the working directory or one
of its parents, or from the file given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to vtree.json")
	flags.BoolVar(&a.pretty, "pretty", false, "Indent HTML output")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		renderCmd(a),
		diffCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("pretty") {
		cfg.Render.Pretty = a.pretty
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cfg.NewLogger(cmd.ErrOrStderr()).With("component", "vtree")
	return nil
}

// reconciler builds a reconciler over doc wired to the configured logger,
// tracer and, when m is not nil, metrics.
func (a *app) reconciler(doc *dom.Document, m *metrics.Metrics) *vdom.Reconciler {
	return vdom.NewReconciler(doc,
		vdom.WithLogger(a.logger),
		vdom.WithMetrics(m),
		vdom.WithTracerName(a.cfg.Tracing.TracerName),
	)
}

// metrics returns collectors when enabled by config or force.
func (a *app) metrics(force bool) *metrics.Metrics {
	if !force && !a.cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(metrics.WithNamespace(a.cfg.Metrics.Namespace))
}

func (a *app) renderConfig() dom.RenderConfig {
	return dom.RenderConfig{
		Pretty: a.cfg.Render.Pretty,
		Indent: a.cfg.Render.Indent,
	}
}
