// cmd/tools/catalog-tool/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// catalogFlags selects the catalog the package commands operate on. With no --file
// patterns the built-in seed catalog is used.
type catalogFlags struct {
	files      []string
	maxPerTier int
}

func newRootCmd() *cobra.Command {
	flags := &catalogFlags{}

	root := &cobra.Command{
		Use:   "catalog-tool",
		Short: "Inspect and validate the consulting service catalog",
		Long: `catalog-tool validates service package seed files, lists and searches the
catalog, seeds a SQL catalog database, evaluates a questionnaire submission
offline and prints the worker activity registry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVarP(&flags.files, "file", "f", nil, "catalog file glob (repeatable, supports **)")
	root.PersistentFlags().IntVar(&flags.maxPerTier, "max-per-tier", 0, "packages allowed per tier (0 uses the default)")

	root.AddCommand(
		newValidateCmd(flags),
		newListCmd(flags),
		newSearchCmd(flags),
		newExportCmd(flags),
		newSeedCmd(flags),
		newEvaluateCmd(flags),
		newActivitiesCmd(),
	)
	return root
}
