// cmd/tools/catalog-tool/activities.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"consultation-workers/internal/common/validation"
	"consultation-workers/pkg/registry"
)

func newActivitiesCmd() *cobra.Command {
	var (
		registryPath string
		validate     bool
	)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Print or validate the worker activity registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(registryPath)
			if err != nil {
				return err
			}

			if validate {
				if err := validateRegistry(reg); err != nil {
					return fmt.Errorf("registry validation failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TASK TYPE\tCATEGORY\tVERSION\tSTATUS\tTIMEOUT")
			for _, a := range reg.Activities {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.TaskType, a.Category, a.Version, a.ImplementationStatus, a.Timeout)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&registryPath, "path", "", "registry JSON file (defaults to the embedded registry)")
	cmd.Flags().BoolVar(&validate, "validate", false, "check required fields, unique IDs and compile every input schema")
	return cmd
}

func loadRegistry(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return reg, nil
}

func validateRegistry(reg *registry.ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	for _, activity := range reg.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if err := validation.ValidateActivityNaming(activity.ID); err != nil {
			return err
		}
		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", activity.ID)
		}
		if activity.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", activity.ID)
		}
		if activity.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", activity.ID)
		}
	}

	_, err := validation.NewValidator(reg)
	return err
}
