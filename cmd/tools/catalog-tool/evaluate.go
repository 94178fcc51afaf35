// cmd/tools/catalog-tool/evaluate.go
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"consultation-workers/internal/models"
	evaluatesubmission "consultation-workers/internal/workers/consultation/evaluate-submission"
)

func newEvaluateCmd(flags *catalogFlags) *cobra.Command {
	var (
		answersPath string
		maxResults  int
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run a questionnaire submission through analysis, matching, routing and reporting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(answersPath)
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			answers, err := models.ParseAnswers(data)
			if err != nil {
				return err
			}

			store, err := flags.loadStore(cmd.Context())
			if err != nil {
				return err
			}

			eval, err := evaluatesubmission.NewPipeline().Evaluate(cmd.Context(), answers, store.Snapshot(), maxResults)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(eval)
		},
	}
	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "JSON file holding the questionnaire answers object")
	cmd.Flags().IntVar(&maxResults, "max-results", 5, "maximum matches to return")
	cmd.MarkFlagRequired("answers")
	return cmd
}
