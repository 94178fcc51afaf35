// cmd/tools/catalog-tool/catalog.go
package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"consultation-workers/internal/catalog"
	"consultation-workers/internal/models"
)

func (f *catalogFlags) source() catalog.Source {
	if len(f.files) == 0 {
		return catalog.DefaultSource{}
	}
	return catalog.FileSource{Patterns: f.files}
}

// loadStore builds a store from the selected source and loads it, so every package
// passes the same validation the workers apply.
func (f *catalogFlags) loadStore(ctx context.Context) (*catalog.Store, error) {
	store, err := catalog.NewStore(catalog.Options{Source: f.source(), MaxPerTier: f.maxPerTier})
	if err != nil {
		return nil, err
	}
	if err := store.Reload(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func newValidateCmd(flags *catalogFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate catalog files and report every problem found",
		RunE: func(cmd *cobra.Command, args []string) error {
			src := flags.source()
			if len(args) > 0 {
				src = catalog.FileSource{Patterns: args}
			}
			pkgs, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}

			validator, err := catalog.NewValidator(flags.maxPerTier)
			if err != nil {
				return err
			}
			problems := validator.ValidateAll(pkgs)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "  - %v\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("catalog validation failed with %d problem(s)", len(problems))
			}
			fmt.Fprintf(out, "Catalog validation passed. Found %d packages.\n", len(pkgs))
			return nil
		},
	}
}

func newListCmd(flags *catalogFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog packages grouped by tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			printPackages(cmd, store.Snapshot())
			return nil
		},
	}
}

func newSearchCmd(flags *catalogFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search package titles, descriptions, categories and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			results := store.Search(cmd.Context(), args[0])
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No packages found.")
				return nil
			}
			printPackages(cmd, results)
			return nil
		},
	}
}

func newExportCmd(flags *catalogFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the catalog in the YAML seed file format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			data, err := catalog.WriteYAML(store.Snapshot())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func printPackages(cmd *cobra.Command, pkgs []models.ServicePackage) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tID\tPRICE\tTIMELINE")
	for _, p := range pkgs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Tier, p.ID, p.PriceRange, p.Timeline)
	}
	w.Flush()
}
