package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/agentic-research/uniface/internal/config"
	"github.com/agentic-research/uniface/internal/hierarchy"
	"github.com/agentic-research/uniface/internal/recordstore"
)

func newImportCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "import [records.json|records.yaml] [out.db]",
		Short: "Copy flat records into a SQLite record store",
		Args:  cobra.ExactArgs(2),
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
			records, err := readRecords(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			logger := log.New(cmd.ErrOrStderr(), "", 0)
			opts := hierarchy.FieldOptions(schema)
			rows := make([]recordstore.Row, 0, len(records))
			for _, rec := range records {
				id := opts.Key(rec)
				if id == "" {
					logger.Printf("import: skip record without %s: %v", schema.KeyField, rec)
					continue
				}
				parent := ""
				if !opts.IsRoot(rec) {
					parent = opts.ParentKey(rec)
				}
				raw, err := json.Marshal(rec)
				if err != nil {
					return fmt.Errorf("encode record %s: %w", id, err)
				}
				rows = append(rows, recordstore.Row{ID: id, ParentID: parent, Record: raw})
			}

			store, err := recordstore.Open(args[1])
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.PutAll(cmd.Context(), rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s\n", len(rows), args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to tree schema (YAML or JSON)")
	return cmd
}
