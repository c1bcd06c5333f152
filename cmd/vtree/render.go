package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/inspect"
)

func renderCmd(a *app) *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document as HTML",
		Long: `Decode a YAML or JSON document, build its inspector view and print
the HTML of the mounted tree. Use "-" to read from stdin.

Examples:
  vtree render data.yaml
  vtree render --pretty --max-depth=3 data.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := readDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-depth") {
				a.cfg.Inspect.MaxDepth = maxDepth
			}

			doc := dom.NewDocument()
			rec := a.reconciler(doc, nil)
			h, err := inspect.Viewer.New(rec, nil, inspect.State{
				Value:    value,
				MaxDepth: a.cfg.Inspect.MaxDepth,
			})
			if err != nil {
				return err
			}
			defer h.Dispose()

			a.logger.Debug("rendered", "file", args[0], "nodes", rec.Stats().Created())

			out := cmd.OutOrStdout()
			if err := dom.RenderToWriter(out, h.Root().(*dom.Node), a.renderConfig()); err != nil {
				return err
			}
			if !a.cfg.Render.Pretty {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Nesting limit of the view (default from vtree.json)")

	return cmd
}
