package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/inspect"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func diffCmd(a *app) *cobra.Command {
	var (
		showMetrics bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Report the surface operations between two documents",
		Long: `Mount the view of <old>, update it to the view of <new> and print the
operations the reconciler performed, followed by the resulting HTML.

Examples:
  vtree diff before.yaml after.yaml
  vtree diff --metrics --quiet before.json after.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldValue, err := readDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			newValue, err := readDocument(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			m := a.metrics(showMetrics)
			doc := dom.NewDocument()
			rec := a.reconciler(doc, m)
			h, err := inspect.Viewer.New(rec, nil, inspect.State{
				Value:    oldValue,
				MaxDepth: a.cfg.Inspect.MaxDepth,
			})
			if err != nil {
				return err
			}
			defer h.Dispose()

			before := rec.Stats()
			if err := h.Update(inspect.State{Value: newValue, MaxDepth: a.cfg.Inspect.MaxDepth}); err != nil {
				return err
			}
			stats := rec.Stats().Sub(before)
			a.logger.Debug("diffed", "old", args[0], "new", args[1], "mutations", stats.Mutations())

			out := cmd.OutOrStdout()
			printStats(out, stats)
			if !quiet {
				fmt.Fprintln(out)
				if err := dom.RenderToWriter(out, h.Root().(*dom.Node), a.renderConfig()); err != nil {
					return err
				}
				if !a.cfg.Render.Pretty {
					fmt.Fprintln(out)
				}
			}
			if m != nil {
				fmt.Fprintln(out)
				return m.WriteText(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print Prometheus metrics after the report")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Omit the HTML")

	return cmd
}

// printStats writes one line per performed op, sorted by name, and the
// mutation total.
func printStats(w io.Writer, stats vdom.Stats) {
	counts := stats.Map()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Operations:")
	if len(names) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %d\n", name, counts[name])
	}
	fmt.Fprintf(w, "  %-14s %d\n", "Mutations", stats.Mutations())
}
