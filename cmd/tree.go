package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentic-research/uniface/internal/config"
	"github.com/agentic-research/uniface/internal/hierarchy"
)

func newTreeCmd() *cobra.Command {
	var (
		schemaPath  string
		expandDepth int
		excluding   string
		expandAll   bool
		prune       bool
	)
	cmd := &cobra.Command{
		Use:   "tree [records.json|records.yaml|records.db]",
		Short: "Print the visible rows of a record tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			if schemaPath == "" {
				schemaPath = env.Schema
			}
			schema, err := config.LoadSchema(schemaPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("expand-depth") {
				schema.ExpandDepth = expandDepth
			}

			records, err := readRecords(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			opts := hierarchy.FieldOptions(schema)
			opts.Logger = log.New(cmd.ErrOrStderr(), "", 0)
			store, err := hierarchy.New(opts)
			if err != nil {
				return err
			}
			store.SetData(records)

			if prune {
				if n := store.PruneEmptyDirectories(); n > 0 {
					opts.Logger.Printf("tree: pruned %d empty directories", n)
				}
			}
			if expandAll {
				store.ExpandAll()
			}

			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("directories-excluding") {
				printNodes(out, store.ExtractDirectories(excluding), opts.Text, 0)
				return nil
			}
			for _, row := range store.HierarchyList() {
				fmt.Fprintf(out, "%s%s%s\n", strings.Repeat("  ", row.Depth), marker(row.HasChildren, row.Expand), store.Text(row.Key))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to tree schema (YAML or JSON)")
	cmd.Flags().IntVar(&expandDepth, "expand-depth", 1, "Levels expanded after loading")
	cmd.Flags().StringVar(&excluding, "directories-excluding", "", "Print only directories, leaving out the subtree of this key")
	cmd.Flags().BoolVar(&expandAll, "all", false, "Expand every node")
	cmd.Flags().BoolVar(&prune, "prune", false, "Remove directories without children")
	return cmd
}

func marker(hasChildren, expand bool) string {
	switch {
	case !hasChildren:
		return "  "
	case expand:
		return "- "
	default:
		return "+ "
	}
}

func printNodes(w io.Writer, nodes []*hierarchy.Node[hierarchy.Record], text func(hierarchy.Record) string, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), marker(len(n.Children) > 0, n.Expand), text(n.Item))
		printNodes(w, n.Children, text, depth+1)
	}
}
