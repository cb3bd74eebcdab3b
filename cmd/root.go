package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uniface",
		Short: "Build record trees and resolve localized UI resources",
		Long: `uniface arranges flat parent-linked records into trees and resolves
localized resource strings from layered locale bundles.

Environment:
  UNIFACE_LOCALE       preferred locales, Accept-Language form (default en-US)
  UNIFACE_OVERLAY_DIR  directory of locale bundles layered over the embedded ones
  UNIFACE_SCHEMA       default tree schema file`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newTreeCmd(),
		newImportCmd(),
		newTextCmd(),
		newBundleCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
