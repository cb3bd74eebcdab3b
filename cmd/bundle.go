package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentic-research/uniface/internal/bundle"
	"github.com/agentic-research/uniface/internal/bundlegen"
	"github.com/agentic-research/uniface/internal/config"
)

func newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Inspect and compile locale bundles",
	}
	cmd.AddCommand(newBundleGenCmd(), newBundleLocalesCmd())
	return cmd
}

func newBundleGenCmd() *cobra.Command {
	var pkg, fn string
	cmd := &cobra.Command{
		Use:   "gen [bundle.yaml] [out.go]",
		Short: "Compile a bundle into a Go function returning its resource tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			data, err := os.ReadFile(src)
			if err != nil {
				return err
			}
			tree, err := bundle.Decode(src, data)
			if err != nil {
				return fmt.Errorf("bundle %s: %w", src, err)
			}
			code, err := bundlegen.Generate(bundlegen.Options{
				Package: pkg,
				Func:    fn,
				Source:  filepath.ToSlash(src),
			}, tree)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dst, code, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dst, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dst)
			return nil
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "resource", "Package clause of the generated file")
	cmd.Flags().StringVar(&fn, "func", "Defaults", "Name of the generated function")
	return cmd
}

func newBundleLocalesCmd() *cobra.Command {
	var overlayDir string
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List the locales available from embedded and overlay bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("overlay-dir") {
				overlayDir = env.OverlayDir
			}
			catalog, err := loadCatalog(log.New(cmd.ErrOrStderr(), "", 0), overlayDir)
			if err != nil {
				return err
			}
			for _, l := range catalog.Locales() {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&overlayDir, "overlay-dir", "", "Directory of locale bundles layered over the embedded ones")
	return cmd
}
